package cmd

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/oshokin/logfacade/facade"
	"github.com/oshokin/logfacade/internal/setup"
)

// emitRequest names the logger when --type-name is set.
type emitRequest struct {
	name       string
	typeName   bool
	level      string
	attributed bool
	cause      string
	args       []string
}

// errConflictingNames is returned when both --name and --type-name are set.
var errConflictingNames = errors.New("--name and --type-name are mutually exclusive")

// errUnknownLevel is returned for an unparsable --level.
var errUnknownLevel = errors.New("unknown level")

func newEmitCommand(opts *options) *cobra.Command {
	req := new(emitRequest)

	emit := &cobra.Command{
		Use:   "emit <message...>",
		Short: "Write one log record.",
		Long: `Writes one record through the configured backend.

The logger is the root logger unless --name or --type-name is given.
Placeholders #1..#9 in the message are replaced with --arg values.
With --attributed the record reports this command as its source
through a context-aware logger.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// Each run owns its counters, so repeated runs in one process do not collide.
			factory, cleanup, err := setup.Build(cfg, prometheus.NewRegistry())
			if err != nil {
				return err
			}

			previous := facade.Global()
			facade.SetGlobal(factory)

			err = req.run(strings.Join(args, " "))

			// The output is closed by cleanup; later package-level lookups must not reach it.
			facade.SetGlobal(previous)

			return errors.Join(err, cleanup())
		},
	}

	flags := emit.Flags()
	flags.StringVarP(&req.name, "name", "n", "", "logger name")
	flags.BoolVar(&req.typeName, "type-name", false, "name the logger after the request type")
	flags.StringVarP(&req.level, "level", "l", facade.InfoLevel.String(), "record level (trace, debug, info, warn, error)")
	flags.BoolVar(&req.attributed, "attributed", false, "use a context-aware logger")
	flags.StringVar(&req.cause, "cause", "", "error attached to the record")
	flags.StringSliceVar(&req.args, "arg", nil, "placeholder values for #1..#9")

	return emit
}

// run writes msg through the logger the request selects from the global factory.
func (r *emitRequest) run(msg string) error {
	level, ok := facade.ParseLevel(r.level)
	if !ok {
		return fmt.Errorf("%w %q", errUnknownLevel, r.level)
	}

	log, err := r.logger()
	if err != nil {
		return err
	}

	args := make([]any, len(r.args))
	for i, a := range r.args {
		args[i] = a
	}

	var causes []error
	if r.cause != "" {
		causes = append(causes, errors.New(r.cause)) //nolint:err113 // The cause text comes from the user.
	}

	log.Log(level, facade.Format(msg, args...), causes...)

	return nil
}

//nolint:ireturn // facade.Handle is the facade contract.
func (r *emitRequest) logger() (facade.Handle, error) {
	switch {
	case r.name != "" && r.typeName:
		return nil, errConflictingNames
	case r.typeName && r.attributed:
		return facade.GetContextAwareLogger(facade.TypeName(reflect.TypeFor[emitRequest]()))
	case r.typeName:
		return facade.GetLoggerFor(reflect.TypeFor[emitRequest]())
	case r.attributed:
		return facade.GetContextAwareLogger(r.name)
	case r.name != "":
		return facade.GetLogger(r.name)
	default:
		return facade.GetDefaultLogger()
	}
}
