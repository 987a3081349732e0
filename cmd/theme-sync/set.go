package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jmylchreest/theme-sync/internal/daemon"
	"github.com/jmylchreest/theme-sync/internal/model"
)

// themeValue is an optional --theme flag.
type themeValue struct {
	pref model.Preference
	set  bool
}

var _ pflag.Value = (*themeValue)(nil)

func (v *themeValue) String() string {
	if !v.set {
		return ""
	}
	return v.pref.String()
}

func (v *themeValue) Set(s string) error {
	pref, err := model.ParsePreference(s)
	if err != nil {
		return err
	}
	v.pref = pref
	v.set = true
	return nil
}

func (v *themeValue) Type() string {
	return "light|dark"
}

// Preference returns the chosen theme, or nil when the flag was not given.
func (v *themeValue) Preference() *model.Preference {
	if !v.set {
		return nil
	}
	p := v.pref
	return &p
}

var setOpts struct {
	theme themeValue
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Apply a theme once",
	Long: `Apply the current desktop color scheme preference once, or an explicit
theme given with --theme.

Examples:
  # Apply whatever the desktop currently prefers
  theme-sync set

  # Force dark, without asking the desktop
  theme-sync set --theme dark`,
	Args: cobra.NoArgs,
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().Var(&setOpts.theme, "theme",
		"Explicit theme to apply instead of reading the desktop preference")
	_ = setCmd.RegisterFlagCompletionFunc("theme", cobra.FixedCompletions(
		[]string{model.Light.String(), model.Dark.String()}, cobra.ShellCompDirectiveNoFileComp))
}

func runSet(cmd *cobra.Command, args []string) error {
	override := setOpts.theme.Preference()

	src, err := newSource()
	if err != nil {
		return err
	}

	return daemon.ApplyOnce(cmd.Context(), src, newApplier(), cfg.Apps, override, logger)
}
