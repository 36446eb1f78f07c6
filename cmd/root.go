package cmd

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ai-interviewer/interviewer-cli/internal/interviewer"
)

const (
	app       = "ai-interviewer"
	envPrefix = "AI_INTERVIEWER"
)

type Config struct {
	APIURL         string        `mapstructure:"api-url"`
	Origin         string        `mapstructure:"origin"`
	StateFile      string        `mapstructure:"state-file"`
	UserAgent      string        `mapstructure:"user-agent"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	MetricsFile    string        `mapstructure:"metrics-file"`
	CodeFile       string        `mapstructure:"code-file"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:          app,
		Short:        "ai-interviewer creates AI-generated interviews, collects answers and shows scored results",
		SilenceUsage: true,
	}
)

// Execute executes the root command. Interrupts cancel the running request.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is ai-interviewer.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("api-url", interviewer.DefaultAPIURL, "backend address")
	rootCmd.PersistentFlags().String("origin", interviewer.DefaultOrigin, "web application address used for share and checkout links")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("api-url", rootCmd.PersistentFlags().Lookup("api-url"))
	viper.BindPFlag("origin", rootCmd.PersistentFlags().Lookup("origin"))

	viper.SetDefault("user-agent", interviewer.DefaultUserAgent)
}

func initConfig() {
	// .env is optional.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Only an explicitly requested config file has to exist. A broken one is
	// always fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		config = &Config{}
	}

	return config, nil
}
