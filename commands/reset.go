package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/psvr-exporter/internal/data/ledger"
	"github.com/penwyp/psvr-exporter/internal/util"
	"github.com/spf13/cobra"
)

func newResetCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the resume point so every hand in the log is exported again",
		Long: `reset clears the timestamp of the last exported hand. The next run converts
the whole log again. Hand ids keep counting up, so re-exported hands never
reuse an id a tracking tool has already seen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.reset(cmd.InOrStdin(), cmd.OutOrStdout(), yes)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func (a *app) reset(in io.Reader, out io.Writer, yes bool) error {
	if !yes {
		fmt.Fprintf(out, "Reset the resume point in %s? Hands already exported will be exported again. [y/N] ", a.cfg.StateDir)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted")
			return nil
		}
	}

	lock, err := ledger.AcquireLock(a.cfg.StateDir)
	if err != nil {
		if errors.Is(err, ledger.ErrLocked) {
			return fmt.Errorf("an exporter is running on %s, stop it first", a.cfg.StateDir)
		}
		return err
	}
	defer lock.Release()

	l, err := a.openLedger()
	if err != nil {
		return err
	}
	defer l.Close()

	if err := l.ResetCursor(); err != nil {
		return err
	}
	util.LogInfo("Resume point cleared")
	fmt.Fprintf(out, "Resume point cleared, next hand id stays %d\n", l.NextID())
	return nil
}
