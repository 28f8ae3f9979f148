package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/xw1nchester/tca-backend/internal/auth"
	"github.com/xw1nchester/tca-backend/internal/business"
	"github.com/xw1nchester/tca-backend/internal/profile"
)

func (c *console) signUp(ctx context.Context, args []string) error {
	var req auth.SignUpRequest

	fs := flag.NewFlagSet("sign-up", flag.ContinueOnError)
	fs.StringVar(&req.Email, "email", "", "account email")
	fs.StringVar(&req.Password, "password", "", "account password")
	fs.StringVar(&req.CompanyName, "company", "", "company name")
	fs.StringVar(&req.CompanyURL, "url", "", "company website")
	if err := fs.Parse(args); err != nil {
		return err
	}

	identity, err := c.sessions.SignUp(ctx, req)
	if err != nil {
		return err
	}

	return printJSON(identity)
}

func (c *console) signIn(ctx context.Context, args []string) error {
	var email, password string

	fs := flag.NewFlagSet("sign-in", flag.ContinueOnError)
	fs.StringVar(&email, "email", "", "account email")
	fs.StringVar(&password, "password", "", "account password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	identity, err := c.sessions.SignIn(ctx, email, password)
	if err != nil {
		return err
	}

	return printJSON(identity)
}

func (c *console) whoami() error {
	identity := c.sessions.Identity()
	if identity == nil {
		return errSignedOut
	}

	return printJSON(identity)
}

func (c *console) resetPassword(ctx context.Context, args []string) error {
	var email string

	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	fs.StringVar(&email, "email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.sessions.ResetPassword(ctx, email); err != nil {
		return err
	}

	fmt.Println("If the address is registered, a reset link is on its way.")

	return nil
}

func (c *console) profile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("profile needs a subcommand: show, edit or delete")
	}

	if c.sessions.Identity() == nil {
		return errSignedOut
	}

	switch args[0] {
	case "show":
		return printJSON(c.dashboard.Snapshot())
	case "edit":
		return c.editProfile(ctx, args[1:])
	case "delete":
		snapshot, err := c.dashboard.Delete(ctx)
		if err != nil {
			return err
		}
		return printJSON(snapshot)
	}

	return fmt.Errorf("unknown profile subcommand %q", args[0])
}

type profileFlags struct {
	name, description, phone, email, website string
	address, city, state, zip                string
	services, logo                           string
}

func (c *console) editProfile(ctx context.Context, args []string) error {
	var f profileFlags

	fs := flag.NewFlagSet("profile edit", flag.ContinueOnError)
	fs.StringVar(&f.name, "name", "", "business name")
	fs.StringVar(&f.description, "description", "", "description")
	fs.StringVar(&f.phone, "phone", "", "phone number")
	fs.StringVar(&f.email, "email", "", "contact email")
	fs.StringVar(&f.website, "website", "", "website")
	fs.StringVar(&f.address, "address", "", "street address")
	fs.StringVar(&f.city, "city", "", "city")
	fs.StringVar(&f.state, "state", "", "state")
	fs.StringVar(&f.zip, "zip", "", "zip code")
	fs.StringVar(&f.services, "services", "", "comma separated services from the checklist")
	fs.StringVar(&f.logo, "logo", "", "path to a logo image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := c.dashboard.Edit(); err != nil {
		if snapshot := c.dashboard.Snapshot(); snapshot.Message != "" {
			return fmt.Errorf("%s", snapshot.Message)
		}
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if err := c.dashboard.Update(func(p *business.Profile) {
		apply := func(name string, dst *string, value string) {
			if set[name] {
				*dst = value
			}
		}
		apply("name", &p.Name, f.name)
		apply("description", &p.Description, f.description)
		apply("phone", &p.Phone, f.phone)
		apply("email", &p.Email, f.email)
		apply("website", &p.Website, f.website)
		apply("address", &p.Address, f.address)
		apply("city", &p.City, f.city)
		apply("state", &p.State, f.state)
		apply("zip", &p.ZipCode, f.zip)
		if set["services"] {
			p.Services = business.NormalizeServices(strings.Split(f.services, ","))
		}
	}); err != nil {
		return err
	}

	if f.logo != "" {
		if err := c.setLogo(f.logo); err != nil {
			return err
		}
	}

	snapshot, err := c.dashboard.Save(ctx)
	if err != nil {
		if snapshot.Message != "" && snapshot.Message != profile.MsgSaveFailed {
			return fmt.Errorf("%s", snapshot.Message)
		}
		return err
	}

	return printJSON(snapshot)
}

func (c *console) setLogo(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return c.dashboard.SetLogo(file)
}

func (c *console) directory(ctx context.Context, args []string) error {
	var page int

	fs := flag.NewFlagSet("directory", flag.ContinueOnError)
	fs.IntVar(&page, "page", 1, "page number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	profiles, err := c.client.Search(ctx, strings.Join(fs.Args(), " "), page)
	if err != nil {
		return err
	}

	for i := range profiles {
		profiles[i].LogoURL = business.LogoURL(profiles[i].LogoURL)
	}

	return printJSON(profiles)
}
