package util

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/2KU77B0N3S/hllrcon/client"
	"github.com/2KU77B0N3S/hllrcon/protocol/common"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupClientFlags adds the common server connection flags to a command
func SetupClientFlags(cmd *cobra.Command) {
	key := "host"
	cmd.PersistentFlags().String(key, "localhost", WrapString("Host of the game server's RCON endpoint"))

	key = "port"
	cmd.PersistentFlags().Int(key, 27015, WrapString("Port of the game server's RCON endpoint"))

	key = "password"
	cmd.PersistentFlags().String(key, "", WrapString("RCON password. Prefer setting this via the HLLRCON_PASSWORD environment variable or an .env file"))

	key = "rcon-version"
	cmd.PersistentFlags().Int(key, common.ProtocolV2, WrapString("Protocol generation to speak (1 for the legacy text console, 2 for the JSON console)"))

	key = "pool-size"
	cmd.PersistentFlags().Int(key, common.DefaultPoolSize, WrapString("Simultaneous connections to hold to the server"))

	key = "timeout"
	cmd.PersistentFlags().Int(key, common.DefaultTimeoutSecond, WrapString("Per-command timeout in seconds, negative for none"))

	key = "connect-timeout"
	cmd.PersistentFlags().Int(key, common.DefaultConnectTimeoutSecond, WrapString("TCP connect timeout in seconds"))

	key = "queue-size"
	cmd.PersistentFlags().Int(key, common.DefaultQueueSize, WrapString("How many commands may wait per connection while it is down"))

	key = "reconnect-retries"
	cmd.PersistentFlags().Int(key, 0, WrapString("Consecutive failed connection attempts before giving up, 0 to retry forever"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("hllrcon")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	initLogger()
}

// initLogger configures the global zerolog logger for console output
func initLogger() {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(viper.GetString("log-level")); err == nil && parsed != zerolog.NoLevel {
		level = parsed
	}

	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
}

// GetClientConfig reads the client configuration from viper
func GetClientConfig() common.ClientConfig {
	return common.ClientConfig{
		Host:                 viper.GetString("host"),
		Port:                 viper.GetInt("port"),
		Password:             viper.GetString("password"),
		Version:              viper.GetInt("rcon-version"),
		PoolSize:             viper.GetInt("pool-size"),
		TimeoutSecond:        viper.GetInt("timeout"),
		ConnectTimeoutSecond: viper.GetInt("connect-timeout"),
		QueueSize:            viper.GetInt("queue-size"),
		ReconnectMaxRetries:  viper.GetInt("reconnect-retries"),
	}
}

// GetClient creates a client from the current configuration
func GetClient() (*client.Client, error) {
	return client.New(GetClientConfig())
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
