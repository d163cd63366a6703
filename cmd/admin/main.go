// Operator CLI: account bootstrap and counter reconciliation. Talks to
// the database directly, no Redis required.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"fixtrack/backend/internal/models"
	"fixtrack/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=user password=password dbname=fixtrackdb port=5432 sslmode=disable"
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "create-user":
		if len(os.Args) < 6 {
			fmt.Println("Usage: admin create-user <name> <email> <password> <role> [skills,comma,separated]")
			os.Exit(1)
		}
		var skills []string
		if len(os.Args) > 6 {
			skills = strings.Split(os.Args[6], ",")
		}
		if err := createUser(storageSvc, os.Args[2], os.Args[3], os.Args[4], os.Args[5], skills); err != nil {
			log.Fatalf("Error creating user: %v", err)
		}
		fmt.Printf("User %s created.\n", os.Args[3])

	case "reconcile":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin reconcile <worker_id>")
			os.Exit(1)
		}
		count, err := storageSvc.RecountActiveComplaints(os.Args[2])
		if err != nil {
			log.Fatalf("Error reconciling counter: %v", err)
		}
		fmt.Printf("Worker %s active complaint count reconciled to %d.\n", os.Args[2], count)

	case "reconcile-all":
		workers, err := storageSvc.ListUsers(models.RoleWorker)
		if err != nil {
			log.Fatalf("Error listing workers: %v", err)
		}
		for _, w := range workers {
			count, err := storageSvc.RecountActiveComplaints(w.ID)
			if err != nil {
				log.Fatalf("Error reconciling worker %s: %v", w.ID, err)
			}
			fmt.Printf("%s (%s): %d active\n", w.Name, w.ID, count)
		}

	case "show-worker":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin show-worker <worker_id>")
			os.Exit(1)
		}
		worker, err := storageSvc.GetUserByID(os.Args[2])
		if err != nil || worker == nil {
			log.Fatalf("Worker not found: %v", err)
		}
		fmt.Printf("%s <%s> role=%s available=%v active=%d skills=%v\n",
			worker.Name, worker.Email, worker.Role, worker.IsAvailable,
			worker.ActiveComplaintCount, []string(worker.Skills))

	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <create-user|reconcile|reconcile-all|show-worker> [args]")
	os.Exit(1)
}

func createUser(s storage.Storage, name, email, password, role string, skills []string) error {
	if !models.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}
	for _, skill := range skills {
		if !models.ValidCategory(skill) {
			return fmt.Errorf("unknown skill %q", skill)
		}
	}

	user := &models.User{
		Name:   name,
		Email:  email,
		Role:   role,
		Skills: skills,
	}
	if err := user.SetPassword(password); err != nil {
		return err
	}
	return s.SaveUser(user)
}
