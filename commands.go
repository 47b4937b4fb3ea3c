package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ankurkotwal/bindchain/binder"
	"github.com/ankurkotwal/bindchain/binder/canon"
	"github.com/ankurkotwal/bindchain/binder/card"
	"github.com/ankurkotwal/bindchain/binder/chain"
	"github.com/ankurkotwal/bindchain/binder/classify"
	"github.com/ankurkotwal/bindchain/binder/common"
	"github.com/ankurkotwal/bindchain/binder/rewasd"
	"github.com/ankurkotwal/bindchain/binder/starcitizen"
)

// Output formats of the listing commands
const (
	outputTable = "table"
	outputYAML  = "yaml"
	outputJSON  = "json"
)

// cli holds the flags shared by every command
type cli struct {
	configPath string
	verbose    bool
	debug      bool
	config     *common.Config
}

func newRootCommand() *cobra.Command {
	app := &cli{}
	rootCmd := &cobra.Command{
		Use:   "bindchain",
		Short: "Resolve controller remaps through to Star Citizen actions",
		Long: `bindchain joins a reWASD remap config to Star Citizen key bindings and
reports which game action every controller button ends up at.

Commands:
  serve     Run the HTTP API
  resolve   Resolve files and print the mappings
  defaults  List the game's default profile
  card      Render a reference card image
  remap     List the mappings of a remap config
  bindings  List the live game bindings`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			common.SetupProcessLogger(app.verbose)
			config, err := common.LoadConfig(app.configPath)
			if err != nil {
				return err
			}
			if app.debug {
				config.DebugOutput = true
			}
			app.config = config
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&app.configPath, "config", "c", "",
		fmt.Sprintf("config file (default %s)", common.DefaultConfigFile))
	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&app.debug, "debug", "d", false,
		"enable debug mode, test routes and profiling")

	rootCmd.AddCommand(app.serveCmd())
	rootCmd.AddCommand(app.resolveCmd())
	rootCmd.AddCommand(app.defaultsCmd())
	rootCmd.AddCommand(app.cardCmd())
	rootCmd.AddCommand(app.remapCmd())
	rootCmd.AddCommand(app.bindingsCmd())
	rootCmd.AddCommand(app.versionCmd())
	return rootCmd
}

func (app *cli) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(_ *cobra.Command, _ []string) error {
			router, addr, err := binder.GetServer(app.config, app.debug)
			if err != nil {
				return err
			}
			return router.Run(addr)
		},
	}
}

func (app *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", app.config.AppName, app.config.Version)
		},
	}
}

// resolveFlags are shared by resolve and card
type resolveFlags struct {
	rewasdFile     string
	actionMapsFile string
	mode           string
	modifier       string
	button         string
	source         string
	search         string
}

func (f *resolveFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rewasdFile, "rewasd", "", "reWASD remap config (.rewasd)")
	cmd.Flags().StringVar(&f.actionMapsFile, "actionmaps", "", "Star Citizen actionmaps.xml")
	cmd.Flags().StringVar(&f.mode, "mode", "", "only this gameplay mode")
	cmd.Flags().StringVar(&f.modifier, "modifier", "", `modifier name, "none" or "any"`)
	cmd.Flags().StringVar(&f.button, "button", "", "only this controller button")
	cmd.Flags().StringVar(&f.source, "source", "", "only this mapping source")
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "free text search")
}

func (f *resolveFlags) filter() (chain.Filter, error) {
	filter := chain.Filter{
		Modifier: chain.ParseModifierFilter(f.modifier),
		Button:   f.button,
		Search:   f.search,
	}
	if len(f.mode) > 0 {
		mode, err := classify.ParseMode(f.mode)
		if err != nil {
			return filter, err
		}
		filter.Mode = mode
	}
	if len(f.source) > 0 {
		source, err := chain.ParseSource(f.source)
		if err != nil {
			return filter, err
		}
		filter.Source = source
	}
	return filter, nil
}

// resolve reads the input files and resolves them with the configured game data
func (app *cli) resolve(flags *resolveFlags, log *common.Logger) (chain.Result, *common.GameData, error) {
	if len(flags.rewasdFile) == 0 && len(flags.actionMapsFile) == 0 {
		return chain.Result{}, nil, fmt.Errorf("at least one of --rewasd and --actionmaps is required")
	}
	remap, err := readOptional(flags.rewasdFile)
	if err != nil {
		return chain.Result{}, nil, err
	}
	bindings, err := readOptional(flags.actionMapsFile)
	if err != nil {
		return chain.Result{}, nil, err
	}
	gameData, err := common.LoadGameData(app.config.GameDataFile, log)
	if err != nil {
		return chain.Result{}, nil, err
	}
	classifier, err := gameData.Classifier()
	if err != nil {
		return chain.Result{}, nil, err
	}
	result := chain.ParseAndResolve(remap, bindings, classifier, new(chain.Sequence))
	for _, msg := range result.Errors {
		log.Err("%s", msg)
	}
	return result, gameData, nil
}

func readOptional(filename string) ([]byte, error) {
	if len(filename) == 0 {
		return nil, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}
	return data, nil
}

func (app *cli) resolveCmd() *cobra.Command {
	flags := &resolveFlags{}
	var output string
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve a remap config and game bindings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			log := common.NewDebugLog(app.config.DebugOutput)
			result, _, err := app.resolve(flags, log)
			if err != nil {
				return err
			}
			result.Mappings = chain.Query(result.Mappings, filter)
			return writeResult(cmd.OutOrStdout(), result, output)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, yaml or json")
	return cmd
}

func writeResult(w io.Writer, result chain.Result, output string) error {
	switch output {
	case outputTable:
		fmt.Fprintln(w, mappingTable(result.Mappings))
		for _, msg := range result.Errors {
			fmt.Fprintf(w, "error: %s\n", msg)
		}
		fmt.Fprintln(w, statsLine(result.Stats))
		return nil
	case outputYAML:
		return yaml.NewEncoder(w).Encode(result)
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}
	return fmt.Errorf("unknown output format %q", output)
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Format.Footer = text.FormatDefault
	return tbl
}

func mappingTable(mappings []*chain.UnifiedMapping) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"ID", "Mode", "Button", "Keys", "Action", "Source"})
	for _, m := range mappings {
		tbl.AppendRow(table.Row{m.ID, m.Mode, card.ButtonLabel(m),
			strings.Join(m.Keys, " + "), m.DisplayName, m.Source})
	}
	tbl.AppendFooter(table.Row{"", "", "", "", fmt.Sprintf("Total: %d", len(mappings))})
	return tbl.Render()
}

func statsLine(stats chain.Stats) string {
	return fmt.Sprintf("%s remap mappings, %s game bindings: %s resolved, %s unresolved, %s direct",
		humanize.Comma(int64(stats.RemapMappings)), humanize.Comma(int64(stats.GameBindings)),
		humanize.Comma(int64(stats.ResolvedChains)), humanize.Comma(int64(stats.Unresolved)),
		humanize.Comma(int64(stats.DirectBindings)))
}

func (app *cli) defaultsCmd() *cobra.Command {
	var profile, localization, state, search, output string
	var maps, devices []string
	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "List the actions of the game's default profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			config := *app.config
			if len(profile) > 0 {
				config.DefaultProfileFile = profile
			}
			if len(localization) > 0 {
				config.LocalizationFile = localization
			}
			if len(config.DefaultProfileFile) == 0 {
				return fmt.Errorf("no default profile, use --profile or DefaultProfileFile")
			}
			stateFilter, err := starcitizen.ParseBindingStateFilter(state)
			if err != nil {
				return err
			}
			filter := starcitizen.DefaultFilter{Search: search, ActionMaps: maps, State: stateFilter}
			for _, name := range devices {
				device, err := starcitizen.ParseDevice(name)
				if err != nil {
					return err
				}
				filter.Devices = append(filter.Devices, device)
			}

			actions, err := binder.LoadDefaults(&config, common.NewDebugLog(config.DebugOutput))
			if err != nil {
				return err
			}
			return writeDefaults(cmd.OutOrStdout(), starcitizen.FilterDefaults(actions, filter), output)
		},
	}
	cmd.Flags().StringVar(&profile, "profile", "", "defaultProfile.xml (default from config)")
	cmd.Flags().StringVar(&localization, "localization", "", "global.ini used to resolve labels")
	cmd.Flags().StringVar(&state, "state", "", "all, bound or unbound")
	cmd.Flags().StringVarP(&search, "search", "s", "", "free text search")
	cmd.Flags().StringSliceVar(&maps, "map", nil, "only these action maps")
	cmd.Flags().StringSliceVar(&devices, "device", nil, "device classes the state filter looks at")
	cmd.Flags().StringVarP(&output, "output", "o", outputTable, "output format: table, yaml or json")
	return cmd
}

func writeDefaults(w io.Writer, actions []*starcitizen.DefaultAction, output string) error {
	switch output {
	case outputTable:
		tbl := newTable()
		header := table.Row{"Action Map", "Action", "Label"}
		for _, device := range starcitizen.Devices {
			header = append(header, device)
		}
		tbl.AppendHeader(header)
		for _, action := range actions {
			row := table.Row{action.ActionMap, action.Action, action.Label}
			for _, device := range starcitizen.Devices {
				row = append(row, bindCell(action.Bind(device)))
			}
			tbl.AppendRow(row)
		}
		tbl.AppendFooter(table.Row{"", "", fmt.Sprintf("Total: %d", len(actions))})
		fmt.Fprintln(w, tbl.Render())
		return nil
	case outputYAML:
		return yaml.NewEncoder(w).Encode(actions)
	case outputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(actions)
	}
	return fmt.Errorf("unknown output format %q", output)
}

func bindCell(bind starcitizen.Bind) string {
	switch bind.State() {
	case starcitizen.Bound:
		value, _ := bind.Value()
		return value
	case starcitizen.BindableUnbound:
		return "-"
	}
	return ""
}

func (app *cli) cardCmd() *cobra.Command {
	flags := &resolveFlags{}
	var out, title string
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Render resolved mappings as a reference card JPEG",
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := flags.filter()
			if err != nil {
				return err
			}
			log := common.NewDebugLog(app.config.DebugOutput)
			result, gameData, err := app.resolve(flags, log)
			if err != nil {
				return err
			}
			if len(title) == 0 {
				title = app.config.AppName
			}
			image, err := card.Render(chain.Query(result.Mappings, filter), &app.config.Card,
				card.Options{Title: title, Version: app.config.Version, ModeColours: gameData.ModeColours})
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, image, 0o644); err != nil {
				return fmt.Errorf("write card: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%s)\n", out, humanize.Bytes(uint64(len(image))))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&out, "out", "card.jpg", "output file")
	cmd.Flags().StringVar(&title, "title", "", "card title (default app name)")
	return cmd
}

func (app *cli) remapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remap FILE",
		Short: "List the mappings of a reWASD remap config",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			result, err := rewasd.ParseJSON(data)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, remapTable(result))
			for _, msg := range result.Errors {
				fmt.Fprintf(w, "error: %s\n", msg)
			}
			return nil
		},
	}
}

func remapTable(result *rewasd.Result) string {
	tbl := newTable()
	tbl.AppendHeader(table.Row{"Layer", "Button", "Mapping", "Description"})
	for _, m := range result.Mappings {
		layer := ""
		if m.Layer != nil {
			layer = m.Layer.Description
		}
		tbl.AppendRow(table.Row{layer, canon.ButtonDisplayName(m.Button),
			rewasd.FormatMapping(m), m.Description})
	}
	tbl.AppendFooter(table.Row{"", "", fmt.Sprintf("Total: %d", len(result.Mappings))})
	return tbl.Render()
}

func (app *cli) bindingsCmd() *cobra.Command {
	var device string
	cmd := &cobra.Command{
		Use:   "bindings FILE",
		Short: "List the bindings of a Star Citizen actionmaps.xml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			result, err := starcitizen.ParseActionMaps(data)
			if err != nil {
				return err
			}
			bindings := result.Bindings
			if len(device) > 0 {
				parsed, err := starcitizen.ParseDevice(device)
				if err != nil {
					return err
				}
				bindings = starcitizen.FilterByDevice(bindings, parsed)
			}
			w := cmd.OutOrStdout()
			tbl := newTable()
			tbl.AppendHeader(table.Row{"Action Map", "Action", "Device", "Input"})
			for _, binding := range bindings {
				tbl.AppendRow(table.Row{binding.ActionMap, binding.Action, binding.Device, binding.RawInput})
			}
			tbl.AppendFooter(table.Row{"", "", "", fmt.Sprintf("Total: %d", len(bindings))})
			fmt.Fprintln(w, tbl.Render())
			fmt.Fprintf(w, "Profile %s, action maps: %s\n", result.ProfileName,
				strings.Join(starcitizen.ActionMapNames(bindings), ", "))
			for _, msg := range result.Errors {
				fmt.Fprintf(w, "error: %s\n", msg)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&device, "device", "", "only this device class")
	return cmd
}
