package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pokenihongo/admin-console/internal/app"
	"github.com/pokenihongo/admin-console/internal/auth"
	"github.com/pokenihongo/admin-console/internal/catalog"
	"github.com/pokenihongo/admin-console/internal/config"
	"github.com/pokenihongo/admin-console/internal/console"
	"github.com/pokenihongo/admin-console/internal/domain"
	"github.com/pokenihongo/admin-console/internal/listing"
	"github.com/pokenihongo/admin-console/internal/multilingual"
)

// rootOptions are the flags shared by every subcommand.
type rootOptions struct {
	configPath string
	token      string
	locale     string
}

// listOptions select the page a list or browse command opens on.
type listOptions struct {
	page     int
	pageSize int
	search   string
	filters  []string
	scope    []string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "console",
		Short:         "PokeNihongo admin console",
		Long:          `Lists, browses and edits PokeNihongo learning content through the PokeNihongo API.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config YAML (default CONFIG_PATH or ./config.yaml)")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "bearer token (default api.token from config)")
	root.PersistentFlags().StringVar(&opts.locale, "locale", "", "display language: vi, en or ja")

	root.AddCommand(
		newListCmd(opts),
		newBrowseCmd(opts),
		newCreateCmd(opts),
		newDeleteCmd(opts),
		newServeCmd(opts),
		newScreensCmd(opts),
		newVersionCmd(),
	)
	return root
}

func bindListFlags(cmd *cobra.Command, lo *listOptions) {
	cmd.Flags().IntVar(&lo.page, "page", 1, "page to open")
	cmd.Flags().IntVar(&lo.pageSize, "page-size", 0, "page size (default listing.default_page_size)")
	cmd.Flags().StringVar(&lo.search, "search", "", "free-text search")
	cmd.Flags().StringArrayVar(&lo.filters, "filter", nil, "filter as key=value, repeatable")
	cmd.Flags().StringArrayVar(&lo.scope, "scope", nil, "fixed scoping filter as key=value, repeatable")
}

// session bundles what every content command needs.
type session struct {
	app  *app.App
	ctx  context.Context
	auth auth.Session
}

func (o *rootOptions) open(ctx context.Context, logOut io.Writer) (*session, error) {
	cfg, err := config.LoadFrom(o.configPath)
	if err != nil {
		return nil, err
	}
	a := app.New(cfg, app.NewLoggerTo(logOut, cfg.Log))

	ctx, s, err := a.Session(ctx, o.token)
	if err != nil {
		return nil, err
	}
	return &session{app: a, ctx: ctx, auth: s}, nil
}

// controller opens screen and applies lo through the reducer. The page is
// applied last because every other action resets it.
func (s *session) controller(screen catalog.Screen, locale string, lo listOptions) (*listing.Controller[catalog.Row], error) {
	filters, err := parsePairs("filter", lo.filters)
	if err != nil {
		return nil, err
	}
	scope, err := parsePairs("scope", lo.scope)
	if err != nil {
		return nil, err
	}
	if err := s.app.Registry.CheckFilters(screen, filters); err != nil {
		return nil, err
	}

	opts := s.app.ListingOptions(locale)
	opts.Scope = scope
	if lo.pageSize != 0 {
		if !slices.Contains(s.app.Config.Listing.PageSizeOptions, lo.pageSize) {
			return nil, domain.NewValidationError("page-size", fmt.Sprintf("must be one of %v", s.app.Config.Listing.PageSizeOptions))
		}
		opts.InitialPageSize = lo.pageSize
	}

	ctrl, err := s.app.Registry.Open(screen.Name(), s.auth.Role, opts)
	if err != nil {
		return nil, err
	}

	actions := []listing.Action{listing.SetSearch{Text: lo.search}}
	for _, k := range slices.Sorted(maps.Keys(filters)) {
		actions = append(actions, listing.SetFilter{Key: k, Value: filters[k]})
	}
	if lo.page != 1 {
		actions = append(actions, listing.SetPage{Page: lo.page})
	}
	for _, a := range actions {
		if err := ctrl.Dispatch(a); err != nil {
			return nil, err
		}
	}
	return ctrl, nil
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		lo     listOptions
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "list <screen>",
		Short: "Print one page of a list screen",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			screen, err := s.app.Registry.Guard(args[0], s.auth.Role)
			if err != nil {
				return err
			}
			ctrl, err := s.controller(screen, opts.locale, lo)
			if err != nil {
				return err
			}

			if err := ctrl.Refresh(s.ctx); err != nil {
				return err
			}
			if ctrl.Snapshot().Loading {
				if err := ctrl.Refresh(s.ctx); err != nil {
					return err
				}
			}

			snap := ctrl.Snapshot()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]any{
					"items":      snap.Items,
					"pagination": snap.Pagination,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderPage(screen, snap, s.app.Config.Listing.MaxVisiblePages))
			return nil
		},
	}
	bindListFlags(cmd, &lo)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print items and pagination as JSON")
	return cmd
}

func newBrowseCmd(opts *rootOptions) *cobra.Command {
	var (
		lo      listOptions
		logFile string
	)
	cmd := &cobra.Command{
		Use:   "browse <screen>",
		Short: "Open a list screen interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns the terminal; logs go to a file or nowhere.
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				logOut = f
			}

			s, err := opts.open(cmd.Context(), logOut)
			if err != nil {
				return err
			}
			screen, err := s.app.Registry.Guard(args[0], s.auth.Role)
			if err != nil {
				return err
			}
			ctrl, err := s.controller(screen, opts.locale, lo)
			if err != nil {
				return err
			}

			model := console.NewModel(s.ctx, ctrl, s.app.Registry.Fetcher(screen), screen, console.Options{
				PageSizeOptions: s.app.Config.Listing.PageSizeOptions,
				MaxVisiblePages: s.app.Config.Listing.MaxVisiblePages,
				Cache:           s.app.Registry,
			})
			_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(s.ctx)).Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
	bindListFlags(cmd, &lo)
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	var (
		fields       []string
		names        []string
		descriptions []string
	)
	cmd := &cobra.Command{
		Use:   "create <screen>",
		Short: "Create a record",
		Example: `  console create lessons --field slug=n5-greetings --field levelJlpt=5 \
    --name vi="Chào hỏi" --name en=Greetings`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			screen, err := s.app.Registry.Guard(args[0], s.auth.Role)
			if err != nil {
				return err
			}
			sub, err := buildSubmission(screen, fields, map[multilingual.Field][]string{
				multilingual.Name:        names,
				multilingual.Description: descriptions,
			})
			if err != nil {
				return err
			}

			data, err := s.app.Registry.Create(s.ctx, s.auth.Role, screen.Name(), sub)
			if err != nil {
				return describe(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s created\n%s\n", screen.Title(), data)
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&fields, "field", nil, "payload field as key=value, repeatable")
	cmd.Flags().StringArrayVar(&names, "name", nil, "name translation as lang=value, repeatable")
	cmd.Flags().StringArrayVar(&descriptions, "description", nil, "description translation as lang=value, repeatable")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <screen> <id>",
		Short: "Delete a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			if err := s.app.Registry.Delete(s.ctx, s.auth.Role, args[0], args[1]); err != nil {
				return describe(cmd.ErrOrStderr(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s deleted\n", args[0], args[1])
			return nil
		},
	}
}

func newScreensCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "screens",
		Short: "List the screens your role may open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.open(cmd.Context(), os.Stderr)
			if err != nil {
				return err
			}
			for _, sc := range s.app.Registry.Visible(s.auth.Role) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", sc.Name(), sc.Title())
			}
			return nil
		},
	}
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP gateway",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFrom(opts.configPath)
			if err != nil {
				return err
			}
			logger := app.NewLogger(cfg.Log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.New(cfg, logger).Serve(ctx); err != nil {
				logger.Error("server stopped", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
		},
	}
}

// buildSubmission collects --field pairs and per-field translation pairs
// into a submission with an in-memory binding.
func buildSubmission(screen catalog.Screen, fields []string, translations map[multilingual.Field][]string) (catalog.Submission, error) {
	plain, err := parsePairs("field", fields)
	if err != nil {
		return catalog.Submission{}, err
	}
	values := url.Values{}
	for k, v := range plain {
		values.Set(k, v)
	}
	sub := catalog.Submission{Fields: values}

	layout, ok := screen.Layout()
	if !ok {
		return sub, nil
	}
	binding := multilingual.NewStateBinding(layout)
	for field, pairs := range translations {
		byLang, err := parsePairs(field.String(), pairs)
		if err != nil {
			return catalog.Submission{}, err
		}
		for code, text := range byLang {
			lang, err := multilingual.ParseLanguage(code)
			if err != nil {
				return catalog.Submission{}, domain.NewValidationError(field.String(), err.Error())
			}
			if err := binding.Set(multilingual.Slot{Language: lang, Field: field}, text); err != nil {
				return catalog.Submission{}, domain.NewValidationError(field.String(), err.Error())
			}
		}
	}
	sub.Binding = binding
	return sub, nil
}

// parsePairs splits key=value flag values. Later keys win.
func parsePairs(flag string, pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, domain.NewValidationError(flag, fmt.Sprintf("%q is not key=value", p))
		}
		out[k] = v
	}
	return out, nil
}

// describe prints field errors one per line before returning err.
func describe(w io.Writer, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Errors {
			fmt.Fprintf(w, "  %s: %s\n", fe.Field, fe.Message)
		}
	}
	return err
}
