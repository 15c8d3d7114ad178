package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"yarnly/cmd/yarnly/shop"
	"yarnly/internal/api"
	"yarnly/internal/auth"
	"yarnly/internal/catalog"
	"yarnly/internal/config"
	"yarnly/internal/logging"
	"yarnly/internal/session"
)

var (
	// Global flags
	configPath string
	apiURL     string
	debug      bool

	// Login/signup flags
	flagEmail    string
	flagPassword string
	flagName     string
	flagPhone    string

	// Product listing flags
	flagSearch   string
	flagCategory string

	cfg config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yarnly",
	Short: "Yarnly - a terminal storefront for handcrafted goods",
	Long: `Yarnly is a terminal client for the Yarnly handcrafted goods store.

Run without arguments to browse the catalog interactively. Subcommands
cover the same flows for scripting: login, signup, logout, products.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			path = config.DefaultPath()
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if debug {
			cfg.Debug = true
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		// Logs go to a file; stdout belongs to the UI.
		if err := logging.Init(cfg.StateDir, cfg.Debug); err != nil {
			return fmt.Errorf("failed to initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStorefront()
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and store the session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, svc, _ := buildServices()
		if err := svc.Login(cmd.Context(), flagEmail, flagPassword); err != nil {
			return err
		}
		fmt.Println("Logged in.")
		return nil
	},
}

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a new account",
	Long:  `Creates a new account. Signing up does not log you in; run "yarnly login" afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, svc, _ := buildServices()
		req := auth.SignUpRequest{
			UserName:  flagName,
			UserEmail: flagEmail,
			Password:  flagPassword,
			Phone:     flagPhone,
		}
		if err := svc.SignUp(cmd.Context(), req); err != nil {
			return err
		}
		fmt.Println("Account created. Run \"yarnly login\" to sign in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, svc, _ := buildServices()
		if err := svc.Logout(); err != nil {
			return err
		}
		fmt.Println("Logged out.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session state",
	Run: func(cmd *cobra.Command, args []string) {
		_, sessions, _, _ := buildServices()
		if _, ok := sessions.Token(); ok {
			fmt.Println("Signed in.")
		} else {
			fmt.Println("Browsing as guest.")
		}
	},
}

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List products from the catalog",
	Long: `Fetches the catalog and prints matching products.

Example:
  yarnly products --search scarf --category Clothing`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, _, _, fetcher := buildServices()

		category, err := catalog.ParseCategory(flagCategory)
		if err != nil {
			return err
		}
		all := fetcher.FetchAll(cmd.Context())
		matched := catalog.Filter(all, flagSearch, category)

		for _, p := range matched {
			stock := fmt.Sprintf("%d in stock", p.Stock)
			if !p.InStock() {
				stock = "out of stock"
			}
			fmt.Printf("%-4d %-28s %-12s %10s  %s\n", p.ID, p.Name, p.Category, p.DisplayPrice(), stock)
		}
		noun := "pieces"
		if len(matched) == 1 {
			noun = "piece"
		}
		fmt.Printf("%d handcrafted %s\n", len(matched), noun)
		return nil
	},
}

// buildServices wires the shared dependency graph from the loaded config.
func buildServices() (time.Duration, session.Store, *auth.Service, *catalog.Fetcher) {
	timeout := cfg.RequestTimeout()
	sessions := session.NewFileStore(cfg.StateDir)
	client := api.NewClient(cfg.APIURL, timeout, sessions)
	return timeout, sessions, auth.NewService(client, sessions), catalog.NewFetcher(client)
}

// runStorefront starts the interactive TUI.
func runStorefront() error {
	timeout, _, svc, fetcher := buildServices()
	model := shop.New(svc, fetcher, timeout)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.L().Error("storefront exited with error", zap.Error(err))
		return fmt.Errorf("storefront error: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: state dir)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "override the API base URL")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")

	loginCmd.Flags().StringVar(&flagEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&flagPassword, "password", "", "account password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	signupCmd.Flags().StringVar(&flagName, "name", "", "display name")
	signupCmd.Flags().StringVar(&flagEmail, "email", "", "account email")
	signupCmd.Flags().StringVar(&flagPassword, "password", "", "account password")
	signupCmd.Flags().StringVar(&flagPhone, "phone", "", "phone number")
	_ = signupCmd.MarkFlagRequired("name")
	_ = signupCmd.MarkFlagRequired("email")
	_ = signupCmd.MarkFlagRequired("password")
	_ = signupCmd.MarkFlagRequired("phone")

	productsCmd.Flags().StringVar(&flagSearch, "search", "", "name substring to match")
	productsCmd.Flags().StringVar(&flagCategory, "category", "All", "category to filter by")

	rootCmd.AddCommand(loginCmd, signupCmd, logoutCmd, whoamiCmd, productsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
