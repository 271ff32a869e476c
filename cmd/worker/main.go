package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sivaji4829/attendance-backend/internal/config"
	"github.com/Sivaji4829/attendance-backend/internal/notify"
	"github.com/Sivaji4829/attendance-backend/internal/queue"
	"github.com/Sivaji4829/attendance-backend/internal/store"
	"github.com/Sivaji4829/attendance-backend/internal/student"
)

// Worker consumes absence jobs and sends parent SMS notifications.
func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("shutdown signal received")
		cancel()
	}()

	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	redisClient := store.NewRedis(cfg.RedisAddr)

	var q queue.Queue
	if cfg.QueueBackend == "memory" {
		q = queue.NewInMemory(64)
	} else {
		q = queue.NewRedisQueue(redisClient.Client, "attendance:absences")
	}

	smsClient := notify.New(cfg.SMSBaseURL, cfg.SMSAPIKey, cfg.SMSTimeout, cfg.SMSSkip)
	svc := notify.NewService(smsClient, notify.NewRepository(db.Client), student.NewRepository(db.Client))

	messages, err := q.Consume(ctx)
	if err != nil {
		log.Fatalf("queue consume init failed: %v", err)
	}

	log.Println("worker started, waiting for absence jobs...")
	for msg := range messages {
		if msg.Type != "absence" {
			continue
		}

		job, err := queue.DecodeAbsence(msg)
		if err != nil {
			log.Printf("bad absence job: %v", err)
			continue
		}

		result, err := svc.Trigger(ctx, job.StudentID, job.Date, job.Session)
		if err != nil {
			log.Printf("notify student %d failed: %v", job.StudentID, err)
			continue
		}
		if result.Success {
			log.Printf("absence sms sent for student %d (request %s)", job.StudentID, result.RequestID)
		} else {
			log.Printf("absence sms failed for student %d: %s", job.StudentID, result.Detail)
		}

		time.Sleep(10 * time.Millisecond)
	}

	log.Println("worker stopped")
}
