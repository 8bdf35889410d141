package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vinculocrm/vinculo/internal/auth"
	"github.com/vinculocrm/vinculo/internal/migrate"
)

var version = "dev"

var (
	dbConnString string
	verbose      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbConnString, "db", "d", "", "Database connection string")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	seedAdminCmd.Flags().String("email", "", "Admin email address")
	seedAdminCmd.Flags().String("password", "", "Admin password")
	seedAdminCmd.Flags().String("name", "", "Admin full name")
	seedAdminCmd.Flags().String("company", "", "Organization name")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "vinculoctl",
	Short: "vinculoctl manages a Vinculo CRM deployment",
	Long:  `vinculoctl applies the database schema and seeds the initial admin account for a Vinculo CRM deployment.`,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	Long:  `Apply the bootstrap schema to the target database. Safe to run repeatedly.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := openDatabase()
		defer db.Close()

		migrator := migrate.NewMigrator(db)
		if err := migrator.InitializeSchema(); err != nil {
			log.Fatalf("Failed to initialize schema: %v", err)
		}

		fmt.Println("Schema initialized successfully")
	},
}

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the organization and its first admin account",
	Long:  `Create an organization and its first admin profile. Fails when the email is already registered.`,
	Run: func(cmd *cobra.Command, args []string) {
		email := strings.ToLower(strings.TrimSpace(mustFlag(cmd, "email")))
		password := mustFlag(cmd, "password")
		name := mustFlag(cmd, "name")
		company := mustFlag(cmd, "company")

		db := openDatabase()
		defer db.Close()

		hasher := auth.NewPasswordHasher()
		hash, err := hasher.Hash(password)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}

		tx, err := db.Begin()
		if err != nil {
			log.Fatalf("Failed to begin transaction: %v", err)
		}
		defer tx.Rollback()

		var existing int
		if err := tx.QueryRow("SELECT COUNT(*) FROM profiles WHERE email = $1", email).Scan(&existing); err != nil {
			log.Fatalf("Failed to check for existing admin: %v", err)
		}
		if existing > 0 {
			log.Fatalf("An account with email %s already exists", email)
		}

		var orgID string
		if err := tx.QueryRow("INSERT INTO organizations (name) VALUES ($1) RETURNING id", company).Scan(&orgID); err != nil {
			log.Fatalf("Failed to create organization: %v", err)
		}

		_, err = tx.Exec(
			"INSERT INTO profiles (organization_id, email, full_name, role, password_hash) VALUES ($1, $2, $3, 'admin', $4)",
			orgID, email, name, hash,
		)
		if err != nil {
			log.Fatalf("Failed to create admin profile: %v", err)
		}

		if err := tx.Commit(); err != nil {
			log.Fatalf("Failed to commit: %v", err)
		}

		fmt.Printf("Admin account %s created for organization %s\n", email, company)
		if verbose {
			fmt.Printf("Organization id: %s\n", orgID)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("vinculoctl %s\n", version)
	},
}

func openDatabase() *sql.DB {
	if dbConnString == "" {
		log.Fatal("Database connection string is required")
	}

	db, err := sql.Open("postgres", dbConnString)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func mustFlag(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	if strings.TrimSpace(value) == "" {
		log.Fatalf("--%s is required", name)
	}
	return value
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
