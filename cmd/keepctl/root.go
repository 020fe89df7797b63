package main

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	keep "github.com/keepclone/keep.go"
	"github.com/keepclone/keep.go/pkg/logger"
	"github.com/keepclone/keep.go/pkg/session"
)

const defaultAPIURL = "http://localhost:8080"

var (
	flagAPIURL string
	flagDebug  bool
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "keepctl",
		Short:         "Command line client for the notes API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiDefault := os.Getenv("KEEP_API_URL")
	if apiDefault == "" {
		apiDefault = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&flagAPIURL, "api", apiDefault, "base URL of the notes API")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "log every request")

	root.AddCommand(
		newRegisterCmd(),
		newLoginCmd(),
		newLoginGoogleCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newListCmd(),
		newCreateCmd(),
		newPinCmd(),
		newArchiveCmd(),
		newColorCmd(),
		newDeleteCmd(),
		newSearchCmd(),
		newLabelsCmd(),
	)
	return root
}

// sessionPath places the session file under the user config directory.
func sessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "keepctl", "session.json")
}

// newClient builds the API client with the persistent session attached.
func newClient() (*keep.Client, error) {
	level := zerolog.InfoLevel
	if flagDebug {
		level = zerolog.DebugLevel
	}
	log, err := logger.New().Level(level).Pretty().Make()
	if err != nil {
		return nil, err
	}

	store := session.New(session.NewFileStorage(sessionPath()))
	return keep.New(flagAPIURL,
		keep.WithSession(store),
		keep.WithLogger(log),
	), nil
}
