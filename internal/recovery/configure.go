package recovery

import (
	"bytes"
	"fmt"
	"path/filepath"
)

const (
	autoConfName       = "postgresql.auto.conf"
	recoverySignalName = "recovery.signal"
)

// configureRecovery appends the recovery directives the server reads at
// startup — the WAL fetch command, a promote-on-completion action and the
// optional target time — and drops the recovery trigger marker. If this
// step fails the data directory is restored but the server must not be
// started; the caller surfaces the state for the operator.
func (o *Orchestrator) configureRecovery(targetTime string) error {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "restore_command = '%s'\n", o.store.RestoreCommand())
	buf.WriteString("recovery_target_action = 'promote'\n")
	if targetTime != "" {
		fmt.Fprintf(&buf, "recovery_target_time = '%s'\n", targetTime)
	}

	confPath := filepath.Join(o.pgdata, autoConfName)
	if err := o.fs.AppendFile(confPath, buf.Bytes()); err != nil {
		return fmt.Errorf("writing recovery directives: %w", err)
	}

	signalPath := filepath.Join(o.pgdata, recoverySignalName)
	if err := o.fs.WriteFile(signalPath, nil); err != nil {
		return fmt.Errorf("creating recovery signal: %w", err)
	}

	o.log.Info("recovery configured", "conf", confPath, "targetTime", targetTime)
	return nil
}
