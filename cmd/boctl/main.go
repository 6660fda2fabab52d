package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/atelier-sites/backoffice/cmd/backoffice/config"
	"github.com/atelier-sites/backoffice/content"
	"github.com/atelier-sites/backoffice/storage/model"
)

var rootCmd = &cobra.Command{
	Use:   "boctl",
	Short: "boctl can help you manage your backoffice instance",
	Long:  "boctl can help you manage your backoffice instance",
}

var configFile string
var backends model.Backends

func loadConfig() error {
	config.Load(configFile)
	log.Println("Loaded Config")

	var err error
	backends, err = config.LoadStorageBackends(config.Get().Storage)
	if err != nil {
		log.Fatal(err)
	}
	return nil
}

var hashCmd = &cobra.Command{
	Use:   "hash <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := bcrypt.GenerateFromPassword([]byte(args[0]), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fmt.Println(string(hash))
		return nil
	},
}

var adminUsername string
var adminPassword string

var adminSetCmd = &cobra.Command{
	Use:   "set-admin",
	Short: "Set the admin credentials in the stored settings document",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		store := &content.SettingsStore{Sections: backends.Sections}
		if err = store.SetAdminIdentity(
			model.AdminIdentity{
				Username:     adminUsername,
				PasswordHash: string(hash),
			},
		); err != nil {
			return err
		}
		log.Println("Admin credentials updated")
		return nil
	},
}

var bookingStatus string

var bookingListCmd = &cobra.Command{
	Use:   "bookings",
	Short: "List bookings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		bookings, err := backends.Bookings.List(model.BookingFilters{Status: bookingStatus})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bookings)
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel <reference>",
	Short: "Cancel a booking by reference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		booking, err := backends.Bookings.Cancel(args[0])
		if err != nil {
			return err
		}
		if booking == nil {
			return model.NotFoundErrorFmt("no booking with reference '%s'", args[0])
		}
		log.Printf("Booking %s cancelled", booking.Reference)
		return nil
	},
}

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Inspect and edit stored content sections",
}

var sectionGetCmd = &cobra.Command{
	Use:   "get <name>",
	Short: "Print the stored document of a content section",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		doc, err := backends.Sections.Get(args[0])
		if err != nil {
			return err
		}
		if doc == nil {
			return model.NotFoundErrorFmt("no stored document for section '%s'", args[0])
		}
		fmt.Println(string(doc))
		return nil
	},
}

var sectionSetCmd = &cobra.Command{
	Use:   "set <name> <file>",
	Short: "Store the JSON document from a file as a content section",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}
		data, err := os.ReadFile(args[1])
		if err != nil {
			return err
		}
		if !json.Valid(data) {
			return fmt.Errorf("'%s' is not valid JSON", args[1])
		}
		if err = backends.Sections.Put(args[0], data); err != nil {
			return err
		}
		log.Printf("Section %s updated", args[0])
		return nil
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or migrate the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Loading the backends runs the schema migration.
		return loadConfig()
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "the config file to use")
	adminSetCmd.Flags().StringVarP(&adminUsername, "username", "u", "admin", "the admin username")
	adminSetCmd.Flags().StringVarP(&adminPassword, "password", "p", "", "the admin password")
	_ = adminSetCmd.MarkFlagRequired("password")
	bookingListCmd.Flags().StringVarP(&bookingStatus, "status", "s", "", "only list bookings with this status")
	sectionCmd.AddCommand(sectionGetCmd, sectionSetCmd)
	rootCmd.AddCommand(hashCmd, adminSetCmd, bookingListCmd, cancelCmd, sectionCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
