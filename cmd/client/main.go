// Command client is a small CLI over the imagekeep REST API: register and
// log in, upload images, request transforms, and download results.
//
// The server address comes from the IMAGEKEEP_SERVER environment variable or
// the -s flag of each subcommand. After login the bearer token is written to
// a token file (IMAGEKEEP_TOKEN_FILE, default ~/.imagekeep_token) and reused
// by the authenticated subcommands.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dkustov/imagekeep/internal/adapter"
	"github.com/dkustov/imagekeep/internal/logger"
	"github.com/dkustov/imagekeep/internal/utils"
	"github.com/dkustov/imagekeep/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const defaultServer = "http://localhost:8080"

func main() {
	log := logger.NewLogger("imagekeep-client")

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	if command == "version" {
		printBuildInfo()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := run(ctx, command, args); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("command failed")
	}
}

func run(ctx context.Context, command string, args []string) error {
	flags := flag.NewFlagSet(command, flag.ExitOnError)
	serverAddr := flags.String("s", envOr("IMAGEKEEP_SERVER", defaultServer), "server address")

	var username, email, password string
	switch command {
	case "register":
		flags.StringVar(&username, "u", "", "username")
		flags.StringVar(&email, "e", "", "email")
		flags.StringVar(&password, "p", "", "password")
	case "login":
		flags.StringVar(&username, "u", "", "username")
		flags.StringVar(&password, "p", "", "password")
	}

	if err := flags.Parse(args); err != nil {
		return err
	}

	a, err := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{BaseURL: *serverAddr}, logger.Nop())
	if err != nil {
		return err
	}

	switch command {
	case "register":
		return a.Register(ctx, models.User{Username: username, Email: email, Password: password})

	case "login":
		token, err := a.Login(ctx, models.User{Username: username, Password: password})
		if err != nil {
			return err
		}
		if err := saveToken(token); err != nil {
			return err
		}
		if userID, err := utils.ParseUserIDFromJWT(token); err == nil {
			fmt.Printf("logged in as user %d\n", userID)
		} else {
			fmt.Println("logged in")
		}
		return nil

	case "upload":
		if flags.NArg() < 1 {
			return fmt.Errorf("usage: upload <file>")
		}
		if err := loadToken(a); err != nil {
			return err
		}
		path := flags.Arg(0)
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		resp, err := a.Upload(ctx, filepath.Base(path), data)
		if err != nil {
			return err
		}
		fmt.Printf("uploaded %s\n", resp.Filename)
		return nil

	case "transform":
		if flags.NArg() < 2 {
			return fmt.Errorf("usage: transform <op> <filename> [key=value ...]")
		}
		if err := loadToken(a); err != nil {
			return err
		}
		op, filename := flags.Arg(0), flags.Arg(1)
		params := map[string]string{}
		for _, kv := range flags.Args()[2:] {
			key, value, ok := strings.Cut(kv, "=")
			if !ok {
				return fmt.Errorf("bad parameter %q, want key=value", kv)
			}
			params[key] = value
		}
		resp, err := a.Transform(ctx, op, filename, params)
		if err != nil {
			return err
		}
		fmt.Printf("%s -> %s (%dx%d)\n", filename, resp.Filename, resp.Width, resp.Height)
		return nil

	case "gallery":
		if err := loadToken(a); err != nil {
			return err
		}
		gallery, err := a.Gallery(ctx)
		if err != nil {
			return err
		}
		for _, url := range gallery.Images {
			fmt.Println(url)
		}
		return nil

	case "images":
		if err := loadToken(a); err != nil {
			return err
		}
		assets, err := a.Images(ctx)
		if err != nil {
			return err
		}
		for _, asset := range assets {
			fmt.Printf("%s\t%dx%d\t%s\n", asset.Filename, asset.Width, asset.Height, asset.Format)
		}
		return nil

	case "download":
		if flags.NArg() < 1 {
			return fmt.Errorf("usage: download <filename> [output]")
		}
		if err := loadToken(a); err != nil {
			return err
		}
		filename := flags.Arg(0)
		output := filename
		if flags.NArg() > 1 {
			output = flags.Arg(1)
		}
		data, err := a.Download(ctx, filename)
		if err != nil {
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return err
		}
		fmt.Printf("saved %s (%d bytes)\n", output, len(data))
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func tokenFilePath() string {
	if path := os.Getenv("IMAGEKEEP_TOKEN_FILE"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".imagekeep_token"
	}
	return filepath.Join(home, ".imagekeep_token")
}

func saveToken(token string) error {
	return os.WriteFile(tokenFilePath(), []byte(token), 0o600)
}

func loadToken(a adapter.ServerAdapter) error {
	if token := os.Getenv("IMAGEKEEP_TOKEN"); token != "" {
		a.SetToken(token)
		return nil
	}

	data, err := os.ReadFile(tokenFilePath())
	if err != nil {
		return fmt.Errorf("no token: log in first (%w)", err)
	}
	a.SetToken(strings.TrimSpace(string(data)))
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: client <command> [flags] [args]

commands:
  register -u <username> -e <email> -p <password>
  login    -u <username> -p <password>
  upload   <file>
  transform <op> <filename> [key=value ...]
  gallery
  images
  download <filename> [output]
  version`)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
