package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/quillblog/quill/config"
	"github.com/quillblog/quill/database"
	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/util/common"
	"github.com/quillblog/quill/web"
	"github.com/quillblog/quill/web/service"

	"github.com/goccy/go-json"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func initLogger() {
	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}
}

// withDB opens the database described by c, runs fn and closes it again.
// The close error, which includes the final WAL checkpoint, is returned
// alongside any error from fn.
func withDB(c *config.DatabaseConfig, fn func(db *gorm.DB) error) error {
	db, err := database.InitDB(c)
	if err != nil {
		return err
	}
	return common.Combine(fn(db), database.CloseDB(db))
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	db, err := database.InitDB(config.GetDefaultDatabaseConfig())
	if err != nil {
		log.Fatal(err)
	}
	server := web.NewServer(db, web.OptionsFromConfig())
	if err := server.Start(); err != nil {
		logger.Error("start server failed:", common.Combine(err, database.CloseDB(db)))
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Infof("received %v, shutting down", sig)

	if err := common.Combine(server.Stop(), database.CloseDB(db)); err != nil {
		logger.Error("shutdown:", err)
	}
}

func addUser(w io.Writer, c *config.DatabaseConfig, name, email, password string) error {
	return withDB(c, func(db *gorm.DB) error {
		user, err := service.NewUserService(db).Register(context.Background(), name, email, password)
		if err != nil {
			return fmt.Errorf("add user: %w", err)
		}
		fmt.Fprintf(w, "added user %d (%s)\n", user.Id, user.Email)
		return nil
	})
}

func listUsers(w io.Writer, c *config.DatabaseConfig, asJSON bool) error {
	return withDB(c, func(db *gorm.DB) error {
		users, err := service.NewUserService(db).List(context.Background())
		if err != nil {
			return fmt.Errorf("list users: %w", err)
		}
		if asJSON {
			out, err := json.MarshalIndent(users, "", "  ")
			if err != nil {
				return fmt.Errorf("encode users: %w", err)
			}
			fmt.Fprintln(w, string(out))
			return nil
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCREATED")
		for _, u := range users {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.Id, u.Name, u.Email, u.CreatedAt.Format("2006-01-02 15:04"))
		}
		return tw.Flush()
	})
}

func showSetting() {
	fmt.Println("current settings as follows:")
	fmt.Println("db:", config.GetDBPath())
	fmt.Println("log folder:", config.GetLogFolder())
	fmt.Println("log level:", config.GetLogLevel())
	fmt.Println("listen:", config.GetListen())
	fmt.Println("port:", config.GetPort())
	fmt.Println("session max age (min):", config.GetSessionMaxAge())
	fmt.Println("domain:", config.GetDomain())
	fmt.Println("secret set:", config.GetSecret() != "")
}

func main() {
	if err := config.Load(); err != nil {
		log.Fatal(err)
	}

	var rootCmd = &cobra.Command{
		Use:   config.GetName(),
		Short: "A small personal blog",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetName(), config.GetVersion())
		},
	}

	var userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage accounts",
	}

	var addCmd = &cobra.Command{
		Use:   "add",
		Short: "Register an account",
		Run: func(cmd *cobra.Command, args []string) {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			if err := addUser(os.Stdout, config.GetDefaultDatabaseConfig(), name, email, password); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}
	addCmd.Flags().String("name", "", "display name")
	addCmd.Flags().String("email", "", "login email")
	addCmd.Flags().String("password", "", "login password")
	_ = addCmd.MarkFlagRequired("email")
	_ = addCmd.MarkFlagRequired("password")

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			asJSON, _ := cmd.Flags().GetBool("json")
			if err := listUsers(os.Stdout, config.GetDefaultDatabaseConfig(), asJSON); err != nil {
				fmt.Println(err)
				os.Exit(1)
			}
		},
	}
	listCmd.Flags().Bool("json", false, "print as JSON")

	var settingCmd = &cobra.Command{
		Use:   "setting",
		Short: "Inspect settings",
	}

	var showCmd = &cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Run: func(cmd *cobra.Command, args []string) {
			showSetting()
		},
	}

	userCmd.AddCommand(addCmd, listCmd)
	settingCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runCmd, versionCmd, userCmd, settingCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
