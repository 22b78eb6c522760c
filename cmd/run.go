package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/azinterface/azdesk/internal/model"
	"github.com/azinterface/azdesk/internal/render"
	"github.com/azinterface/azdesk/internal/script"
	"github.com/azinterface/azdesk/internal/session"
	"github.com/azinterface/azdesk/internal/wm"
)

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Execute a scripted desktop workflow",
	Long: `Run a YAML script of desktop operations against a fresh desktop and report
each step's outcome along with the final window layout.

Supported ops: open, close, focus, move, resize, minimize, restore, maximize,
snap, title, persona, vault-set, vault-delete. A step with no id targets the
most recently opened window. The persona op reads its id from the step's
persona field; vault ops use key, value, and ttl.

Examples:
  azdesk run workflow.yaml
  azdesk run workflow.yaml --screenshot out.png --scale 0.5
  azdesk run workflow.yaml --diff --stop-on-error=false`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("stop-on-error", true, "Stop at the first failing step")
	runCmd.Flags().Bool("diff", false, "Report window changes instead of the final snapshot")
	runCmd.Flags().String("screenshot", "", "Write a PNG of the final desktop to this path")
	runCmd.Flags().Float64("scale", 0.5, "Screenshot scale factor 0.1-1.0")
	runCmd.Flags().String("screen", "1920x1080", "Desktop size as WIDTHxHEIGHT")
	runCmd.Flags().String("apps-file", "", "YAML file with extra app definitions to merge")
}

// runReport is the run command's output shape.
type runReport struct {
	OK        bool                 `yaml:"ok"                 json:"ok"`
	Steps     int                  `yaml:"steps"              json:"steps"`
	Completed int                  `yaml:"completed"          json:"completed"`
	Results   []script.Result      `yaml:"results"            json:"results"`
	Snapshot  *model.Snapshot      `yaml:"snapshot,omitempty" json:"snapshot,omitempty"`
	Changes   []model.WindowChange `yaml:"changes,omitempty"  json:"changes,omitempty"`
}

func runRun(cmd *cobra.Command, args []string) error {
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")
	diff, _ := cmd.Flags().GetBool("diff")
	screenshotPath, _ := cmd.Flags().GetString("screenshot")
	scale, _ := cmd.Flags().GetFloat64("scale")
	screenFlag, _ := cmd.Flags().GetString("screen")
	appsFile, _ := cmd.Flags().GetString("apps-file")

	steps, err := script.Load(args[0])
	if err != nil {
		return err
	}
	registry, err := loadRegistry(appsFile)
	if err != nil {
		return err
	}
	screen, err := parseScreen(screenFlag)
	if err != nil {
		return err
	}

	sess := session.New(uuid.NewString(), registry, wm.Config{
		ScreenWidth:  screen[0],
		ScreenHeight: screen[1],
		Logger:       logger,
	})

	before := sess.Desktop.Snapshot()
	results := script.Run(sess, steps, script.Options{StopOnError: stopOnError})
	after := sess.Desktop.Snapshot()

	report := runReport{Steps: len(steps), Results: results}
	for _, r := range results {
		if r.OK {
			report.Completed++
		}
	}
	report.OK = report.Completed == len(steps)
	if diff {
		report.Changes = model.DiffSnapshots(before, after)
	} else {
		report.Snapshot = &after
	}

	if screenshotPath != "" {
		f, err := os.Create(screenshotPath)
		if err != nil {
			return fmt.Errorf("create screenshot file: %w", err)
		}
		defer f.Close()
		if err := render.WritePNG(f, after, scale); err != nil {
			return err
		}
		logger.Info().Str("path", screenshotPath).Msg("wrote screenshot")
	}

	if err := printer.Print(report); err != nil {
		return err
	}
	if !report.OK {
		return fmt.Errorf("%d of %d steps failed", len(steps)-report.Completed, len(steps))
	}
	return nil
}
