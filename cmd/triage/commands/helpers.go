package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/myrtus0x0/triage/internal/constants"
	"github.com/myrtus0x0/triage/pkg/triage"
	"github.com/myrtus0x0/triage/pkg/triageclient"
)

// createClient builds a client from flags/environment, falling back to the
// token file written by `triage authenticate`.
func createClient() (triage.Client, error) {
	rootURL := viper.GetString("url")
	token := viper.GetString("token")

	if token == "" {
		fileURL, fileToken, err := loadTokenFile()
		if err != nil {
			return nil, err
		}

		token = fileToken

		if rootURL == "" {
			rootURL = fileURL
		}
	}

	config := &triage.Config{
		Token:   token,
		RootURL: rootURL,
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = &stderrLogger{}
	}

	return triageclient.New(config)
}

// outputObject renders v as JSON or YAML, or calls renderTable for the
// default table format.
func outputObject(v interface{}, renderTable func() error) error {
	switch format := viper.GetString("output"); format {
	case constants.OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("encoding output as JSON: %w", err)
		}

		return nil
	case constants.OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("encoding output as YAML: %w", err)
		}

		return encoder.Close()
	case constants.OutputFormatTable, "":
		return renderTable()
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownOutputFormat, format)
	}
}

// stderrLogger writes transport debug output to stderr.
type stderrLogger struct{}

func (l *stderrLogger) log(level, msg string, fields map[string]interface{}) {
	fmt.Fprintf(os.Stderr, "[%s] %s %v\n", level, msg, fields)
}

func (l *stderrLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *stderrLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *stderrLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *stderrLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }
