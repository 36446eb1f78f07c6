package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/device"
	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
	"github.com/ai-interviewer/interviewer-cli/internal/logger"
	"github.com/ai-interviewer/interviewer-cli/internal/metrics"
	"github.com/ai-interviewer/interviewer-cli/internal/state"
)

// session holds everything a command needs for one invocation.
type session struct {
	config *Config
	logger *zap.Logger
	state  *state.Store
	client *interviewer.Client
	out    io.Writer
	prompt prompter
}

func newSession(cmd *cobra.Command) (*session, error) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	statePath := strings.TrimSpace(config.StateFile)
	if statePath == "" {
		if statePath, err = state.DefaultPath(); err != nil {
			return nil, err
		}
	}

	store, err := state.Load(statePath)
	if err != nil {
		return nil, err
	}

	logger.Debug("starting", zap.String("version", version), zap.String("state_file", store.Path()))

	devices := device.NewStore(store, device.NewHostFingerprinter(), logger)

	s := &session{
		config: config,
		logger: logger,
		state:  store,
		client: newClient(config, store.Language(), devices, logger),
		out:    cmd.OutOrStdout(),
	}

	if isTerminal(os.Stdin) {
		s.prompt = terminalPrompter{}
	}

	return s, nil
}

func newClient(config *Config, language string, devices interviewer.DeviceIDSource, logger *zap.Logger) *interviewer.Client {
	client := interviewer.New(logger, devices)
	client.Metrics = metrics.New()
	client.Language = language

	if config.APIURL != "" {
		client.APIURL = config.APIURL
	}

	if config.Origin != "" {
		client.Origin = config.Origin
	}

	if config.UserAgent != "" {
		client.UserAgent = config.UserAgent
	}

	if config.RequestTimeout > 0 {
		client.HTTPClient.Timeout = config.RequestTimeout
	}

	return client
}

// Close flushes metrics and logs. It is safe to call on a nil session.
func (s *session) Close() {
	if s == nil {
		return
	}

	if path := strings.TrimSpace(s.config.MetricsFile); path != "" {
		if err := s.client.Metrics.WriteToTextfile(path); err != nil {
			s.logger.Warn("writing metrics textfile", zap.String("path", path), zap.Error(err))
		}
	}

	_ = s.logger.Sync()
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// withSession builds a session for the command and releases it afterwards.
func withSession(fn func(cmd *cobra.Command, s *session, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := fn(cmd, s, args); err != nil {
			s.logger.Debug("command failed", zap.String("command", cmd.Name()), zap.Error(err))
			return err
		}
		return nil
	}
}
