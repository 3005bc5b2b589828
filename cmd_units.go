package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"cogbot/src-server/loader"
	"cogbot/src-server/route"
	"cogbot/src-server/utils"

	"github.com/spf13/cobra"
)

var unitsJSON bool

func init() {
	unitsCmd.Flags().BoolVar(&unitsJSON, "json", false, "print the registries as JSON")
	rootCmd.AddCommand(unitsCmd)
}

var unitsCmd = &cobra.Command{
	Use:   "units",
	Short: "Load every unit file offline and list what got registered",
	Long: "Load every unit file without connecting to Discord and list the registered units.\n" +
		"Exits non-zero when any unit file failed to load.",
	Args: cobra.NoArgs,
	RunE: runUnits,
}

// discardBinder accepts listeners without binding them anywhere.
type discardBinder struct{}

func (discardBinder) AddHandler(interface{}) func()     { return func() {} }
func (discardBinder) AddHandlerOnce(interface{}) func() { return func() {} }

func runUnits(cmd *cobra.Command, args []string) error {
	as := utils.NewLocalAppState(utils.NewOfflineConfig())
	l := loader.New(as, handlerTable(), loader.DefaultRoots(as.Config.GetUnitsDir()))

	reports := make(map[string]loader.Report)
	for kind, report := range l.LoadAll() {
		reports[kind.String()] = report
	}
	reports["event"] = l.BindListeners(discardBinder{})

	out := cmd.OutOrStdout()
	units := route.ListUnits(as)
	if unitsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(units); err != nil {
			return fmt.Errorf("runUnits: %w", err)
		}
	} else {
		kinds := make([]string, 0, len(units))
		for kind := range units {
			kinds = append(kinds, kind)
		}
		sort.Strings(kinds)

		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "KIND\tID\tHANDLER\tFILE")
		for _, kind := range kinds {
			for _, u := range units[kind] {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", kind, u.ID, u.Handler, u.File)
			}
		}
		tw.Flush()
	}

	names := make([]string, 0, len(reports))
	for kind := range reports {
		names = append(names, kind)
	}
	sort.Strings(names)

	failed := 0
	for _, kind := range names {
		report := reports[kind]
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d files, %d loaded, %d skipped, %d failed\n",
			kind, report.Files, report.Loaded, report.Skipped, report.Failed)
		failed += report.Failed
	}
	if failed > 0 {
		return fmt.Errorf("%d unit files failed to load", failed)
	}
	return nil
}
