package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/lifemgmt/internal/client/guard"
	"github.com/dmitrijs2005/lifemgmt/internal/client/models"
	"github.com/dmitrijs2005/lifemgmt/internal/common"
	"github.com/dmitrijs2005/lifemgmt/internal/validate"
)

// Register prompts for the sign-up fields and submits them once they pass
// local validation. The outcome is reported through notifications.
func (a *App) Register(ctx context.Context) error {
	a.router.Navigate("/register", false)

	var data models.RegistrationData
	var err error
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"First name", &data.FirstName},
		{"Last name", &data.LastName},
		{"Email", &data.Email},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	data.Password = string(password)

	if errs := validate.Registration(data.FirstName, data.LastName, data.Email, data.Password); !errs.Empty() {
		fmt.Fprintln(a.out, errs.Error())
		return errs
	}

	a.authService.Register(ctx, data)
	return nil
}

// Login prompts for credentials and submits them once they pass local
// validation.
func (a *App) Login(ctx context.Context) error {
	a.router.Navigate(common.LoginViewPath, false)

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Email: email, Password: string(password)}
	if errs := validate.Login(creds.Email, creds.Password); !errs.Empty() {
		fmt.Fprintln(a.out, errs.Error())
		return errs
	}

	a.authService.Login(ctx, creds)
	return nil
}

// Logout ends the session. It never fails.
func (a *App) Logout(ctx context.Context) error {
	a.authService.Logout(ctx)
	return nil
}

// ForgotPassword asks the Credential Store to send a reset token.
func (a *App) ForgotPassword(ctx context.Context) error {
	a.router.Navigate("/forgot-password", false)

	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	if !validate.Email(email) {
		fmt.Fprintln(a.out, "Please enter a valid email")
		return common.ErrorValidation
	}

	msg, err := a.authService.ForgotPassword(ctx, email)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, msg)
	return nil
}

// ResetPassword sets a new password using a reset token.
func (a *App) ResetPassword(ctx context.Context) error {
	a.router.Navigate("/reset-password", false)

	token, err := getSimpleText(a.reader, "Reset token", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword("New password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	var errs validate.Errors
	errs.Check(validate.Required(token), "Reset token is required")
	errs.Check(validate.Password(string(password)), "Password must be at least 8 characters and contain a letter and a number")
	if !errs.Empty() {
		fmt.Fprintln(a.out, errs.Error())
		return errs
	}

	msg, err := a.authService.ResetPassword(ctx, token, string(password))
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return err
	}
	fmt.Fprintln(a.out, msg)
	a.router.Navigate(common.LoginViewPath, false)
	return nil
}

// WhoAmI prints the signed-in user.
func (a *App) WhoAmI(ctx context.Context) error {
	st := a.store.Snapshot()
	if !st.IsAuthenticated {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", st.User.DisplayName(), st.User.Email, st.User.ID)
	return nil
}

// Verify checks a token against the Credential Store. Without an argument
// the token of the current session is checked.
func (a *App) Verify(ctx context.Context, args []string) error {
	token := a.token()
	if len(args) > 0 {
		token = args[0]
	}
	if token == "" {
		fmt.Fprintln(a.out, "No token to verify")
		return nil
	}
	if a.authService.VerifyToken(ctx, token) {
		fmt.Fprintln(a.out, "Token is valid")
	} else {
		fmt.Fprintln(a.out, "Token is invalid")
	}
	return nil
}

// Open switches to a view. Protected views go through the guard.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: open <view>; views:", viewNames())
		return nil
	}
	v, ok := lookupView(args[0])
	if !ok {
		fmt.Fprintln(a.out, "Unknown view:", args[0])
		return errors.New("unknown view")
	}

	a.router.Navigate(v.Path, false)
	a.render(v)
	return nil
}

// Back returns to the previous view.
func (a *App) Back(ctx context.Context) error {
	if !a.router.Back() {
		fmt.Fprintln(a.out, "No previous view")
		return nil
	}
	if v, ok := lookupView(a.router.Current()); ok {
		a.render(v)
	}
	return nil
}

func (a *App) render(v View) {
	if !v.Protected {
		fmt.Fprintln(a.out, v.Title)
		return
	}

	d := a.guard.Enter()
	switch d.Outcome {
	case guard.Loading:
		fmt.Fprintln(a.out, d.Message)
	case guard.Authenticated:
		name := ""
		if st := a.store.Snapshot(); st.User != nil {
			name = st.User.DisplayName()
		}
		fmt.Fprintf(a.out, "%s: welcome, %s\n", v.Title, name)
	default:
		fmt.Fprintf(a.out, "Please log in to open %s\n", v.Title)
	}
}
