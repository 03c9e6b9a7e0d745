package commands

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"wright/builtins"
	"wright/eval"
	"wright/program"
)

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <program.yaml>...",
		Short: "Decode and bind programs without running them",
		Long: `Check decodes each program and binds its labels, functions and entity
templates next to the standard natives, reporting any conflict.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			cleanup, err := setupLogging(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			failed := 0
			for _, path := range args {
				if err := checkFile(path); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d programs failed", failed, len(args))
			}
			return nil
		},
	}
	return cmd
}

func checkFile(path string) error {
	p, err := program.Load(path)
	if err != nil {
		return err
	}
	env := eval.NewEnvironment(nil)
	if err := builtins.NewRegistry(&builtins.Recorder{}).Install(env); err != nil {
		return err
	}
	if err := p.Bind(env); err != nil {
		return err
	}
	log.Debug().
		Str("program", path).
		Int("statements", p.Main.Len()).
		Str("labels", strings.Join(p.Labels(), ",")).
		Msg("Program checked")
	return nil
}
