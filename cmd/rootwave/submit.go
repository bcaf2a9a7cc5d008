package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rootwave/site/internal/fallback"
	"github.com/rootwave/site/internal/lead"
	"github.com/rootwave/site/internal/metrics"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

// printDispatcher prints the deep link instead of opening a browser.
type printDispatcher struct {
	w io.Writer
}

func (d printDispatcher) Open(url string) {
	fmt.Fprintf(d.w, "Open WhatsApp: %s\n", url)
}

// printNotifier prints toasts as plain lines.
type printNotifier struct {
	w io.Writer
}

func (n printNotifier) Notify(t lead.Toast) {
	fmt.Fprintf(n.w, "%s %s\n", t.Title, t.Description)
}

// formFlags maps command flags onto form fields.
var formFlags = []struct {
	flag  string
	field lead.Field
	usage string
}{
	{"name", lead.FieldName, "Full name"},
	{"email", lead.FieldEmail, "Email address"},
	{"phone", lead.FieldPhone, "Phone number"},
	{"company", lead.FieldCompany, "Company (classic form)"},
	{"quantity", lead.FieldQuantity, "Pieces wanted (classic form)"},
	{"size", lead.FieldSize, "Straw size (classic form)"},
	{"pincode", lead.FieldPincode, "Delivery pincode (campaign form)"},
	{"address", lead.FieldAddress, "Delivery address (campaign form)"},
	{"business-type", lead.FieldBusinessType, "Business type (campaign form)"},
	{"message", lead.FieldMessage, "Additional message"},
}

func submitCommand() *cli.Command {
	flags := settingsFlags()
	for _, f := range formFlags {
		flags = append(flags, &cli.StringFlag{Name: f.flag, Usage: f.usage})
	}
	flags = append(flags,
		&cli.StringSliceFlag{
			Name:  "sizes",
			Usage: "Straw sizes wanted, comma separated (campaign form): " + strings.Join(lead.Sizes, ", "),
		},
		&cli.StringFlag{
			Name:  "out",
			Value: ".",
			Usage: "Directory receiving the CSV backup when the webhook fails",
		},
	)

	return &cli.Command{
		Name:      "submit",
		Usage:     "Send one sample request from the command line",
		ArgsUsage: " ",
		Flags:     flags,
		Action:    submit,
	}
}

func submit(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	deliverer, err := newDeliverer(cfg, metrics.New(nil))
	if err != nil {
		return err
	}

	deps := lead.Deps{
		Dispatcher: printDispatcher{w: c.App.Writer},
		Deliverer:  deliverer,
		Notifier:   printNotifier{w: c.App.Writer},
	}
	if dir, err := fallback.NewDir(c.String("out")); err != nil {
		fmt.Fprintf(c.App.Writer, "CSV backup disabled: %v\n", err)
	} else {
		deps.Fallback = dir
	}

	ctrl, err := lead.NewController(cfg.FormVariant(), cfg.LeadSettings(), deps)
	if err != nil {
		return err
	}
	for _, f := range formFlags {
		if c.IsSet(f.flag) {
			ctrl.UpdateField(f.field, c.String(f.flag))
		}
	}
	if c.IsSet("sizes") {
		ctrl.SetStrawSizes(lo.Map(c.StringSlice("sizes"), func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
	}

	res, err := ctrl.Submit(c.Context)
	if errors.Is(err, lead.ErrInvalidForm) {
		invalid := lead.Invalid(ctrl.Form(), ctrl.Variant())
		return fmt.Errorf("%w: check %s", err, strings.Join(lo.Map(invalid, func(f lead.Field, _ int) string {
			return string(f)
		}), ", "))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, res.Status.Text())
	if res.FallbackName != "" && res.Status == lead.StatusFallback {
		fmt.Fprintf(c.App.Writer, "Backup: %s\n", res.FallbackName)
	}
	if res.Status == lead.StatusError {
		return errors.New("lead was not recorded")
	}
	return nil
}
