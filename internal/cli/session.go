package cli

import (
	"errors"

	"studiodesk/pkg/model"
	"studiodesk/pkg/sanitizer"
)

type LoginCmd struct {
	Email    string `arg:"" help:"Account email."`
	Password string `help:"Account password." env:"STUDIODESK_PASSWORD" required:""`
}

func (c *LoginCmd) Run(ctx *Context) error {
	req := model.LoginRequest{Email: sanitizer.SanitizeEmail(c.Email), Password: c.Password}
	if err := ctx.Validator.ValidateLogin(&req); err != nil {
		return err
	}
	if err := ctx.Session.Login(ctx.context(), req.Email, req.Password); err != nil {
		return err
	}

	state := ctx.Session.State()
	ctx.printf("Logged in as %s\n", req.Email)
	printCompanies(ctx, state)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if err := ctx.Session.Logout(ctx.context()); err != nil {
		return err
	}
	ctx.println("Logged out")
	return nil
}

type CompanyListCmd struct{}

func (c *CompanyListCmd) Run(ctx *Context) error {
	if !ctx.Session.IsAuthenticated() {
		return errNotLoggedIn
	}
	printCompanies(ctx, ctx.Session.State())
	return nil
}

type CompanySelectCmd struct {
	ID   string `arg:"" help:"Company ID."`
	Role string `help:"Role to work under." enum:"Manager,ReceptionEmployee,Trainer" default:"Trainer"`
}

func (c *CompanySelectCmd) Run(ctx *Context) error {
	req := model.SelectCompanyRequest{CompanyID: sanitizer.SanitizeID(c.ID), Role: c.Role}
	if err := ctx.Validator.ValidateSelectCompany(&req); err != nil {
		return err
	}
	role, err := model.ParseStaffRole(req.Role)
	if err != nil {
		return err
	}
	if err := ctx.Session.SelectCompany(ctx.context(), req.CompanyID, role); err != nil {
		return err
	}

	state := ctx.Session.State()
	ctx.printf("Working at %s as %s\n", state.SelectedCompany.Name, role)
	return nil
}

type CompanyClearCmd struct{}

func (c *CompanyClearCmd) Run(ctx *Context) error {
	if err := ctx.Session.ClearCompany(ctx.context()); err != nil {
		return err
	}
	ctx.println("Company cleared")
	return nil
}

var errNotLoggedIn = errors.New("not logged in, run `studiodesk login` first")

func printCompanies(ctx *Context, state *model.SessionState) {
	if len(state.Companies) == 0 {
		ctx.println("No companies available")
		return
	}
	ctx.println("Companies:")
	for _, company := range state.Companies {
		marker := " "
		if state.SelectedCompany != nil && state.SelectedCompany.ID == company.ID {
			marker = "*"
		}
		ctx.printf("  %s %s  %s\n", marker, company.ID, company.Name)
	}
}
