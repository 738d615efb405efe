package cmd

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	cfgFile    string
	dsn        string
	verbose    bool
	DB         *sql.DB
	DriverName string // "mysql", "postgres", "sqlserver" or "oracle"
	SchemaName string // catalog schema the metadata queries are bound to
	DBName     string // embedded in the report filename
	Logger     *zap.Logger
)

var RootCmd = &cobra.Command{
	Use:   "db-privacy-scan",
	Short: "A database privacy classification tool",
	Long: `db-privacy-scan inspects a relational database's catalog, asks a
generative model to classify every column for GDPR/POPIA privacy attributes,
and writes the findings to a spreadsheet report.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initLogger(); err != nil {
			return err
		}

		// DSN via flag > config > env, falling back to the active databases entry
		connStr, driverHint, err := resolveDSN()
		if err != nil {
			return err
		}

		// Detect driver, with explicit config taking priority
		DriverName = detectDriver(driverHint, connStr)

		DB, err = sql.Open(DriverName, connStr)
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		if err := DB.Ping(); err != nil {
			return fmt.Errorf("failed to connect to db: %w", err)
		}

		SchemaName, err = resolveSchema(DB, DriverName)
		if err != nil {
			return err
		}

		DBName = viper.GetString("database.name")
		if DBName == "" {
			DBName = SchemaName
		}

		Logger.Debug("connected",
			zap.String("driver", DriverName),
			zap.String("schema", SchemaName))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if DB != nil {
			_ = DB.Close()
		}
		if Logger != nil {
			_ = Logger.Sync()
		}
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// initLogger builds the run logger: stderr plus a timestamped file under logs/.
func initLogger() error {
	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if err := os.MkdirAll("logs", 0o755); err == nil {
		logFile := filepath.Join("logs", fmt.Sprintf("privacy_scan_%s.log", time.Now().Format("20060102_150405")))
		config.OutputPaths = append(config.OutputPaths, logFile)
	}
	var err error
	Logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// resolveSchema resolves the catalog schema the metadata queries run against.
func resolveSchema(db *sql.DB, driver string) (string, error) {
	switch driver {
	case "mysql":
		var name string
		if err := db.QueryRow("SELECT DATABASE()").Scan(&name); err != nil {
			return "", fmt.Errorf("failed to get database name: %w", err)
		}
		if name == "" {
			return "", fmt.Errorf("no database selected in DSN")
		}
		return name, nil
	case "sqlserver", "mssql":
		return "dbo", nil
	case "oracle":
		var user string
		if err := db.QueryRow("SELECT USER FROM DUAL").Scan(&user); err != nil {
			return "", fmt.Errorf("failed to get current user: %w", err)
		}
		return user, nil
	default:
		return "public", nil
	}
}

// detectDriver picks the SQL driver for a DSN. Explicit config wins.
func detectDriver(configured, connStr string) string {
	if configured != "" {
		return configured
	}
	switch {
	case strings.HasPrefix(connStr, "sqlserver://"):
		return "sqlserver"
	case strings.HasPrefix(connStr, "oracle://"):
		return "oracle"
	case strings.Contains(connStr, "postgres") || strings.Contains(connStr, "sslmode"):
		return "postgres"
	default:
		return "mysql"
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-privacy-scan.yaml)")
	RootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "Database Source Name (DSN)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	viper.BindPFlag("database.dsn", RootCmd.PersistentFlags().Lookup("dsn"))
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	// .env first, so GEMINI_API_KEY etc. are visible to AutomaticEnv
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Println("Warning: failed to load .env file:", err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-privacy-scan")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()
	viper.BindEnv("database.dsn", "DB_DSN")
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")

	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("settings.request_interval", "4s")
	viper.SetDefault("settings.output_dir", "reports")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
