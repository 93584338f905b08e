package main

import (
	"context"
	"log"
	"strconv"
	"strings"

	"Yatube/internal/config"
	"Yatube/internal/model"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/mysql"
	"Yatube/internal/repository/redis"
	"Yatube/internal/router"
	"Yatube/internal/service"
)

func main() {
	config.LoadEnv()

	if err := mysql.InitDB(config.MySQLDSN()); err != nil {
		panic(err)
	}

	// optional: single-session enforcement needs Redis
	if addr := config.RedisAddr(); addr != "" {
		if err := redis.Init(addr, config.RedisPassword(), config.RedisDB()); err != nil {
			panic(err)
		}
		defer redis.Close()
	}

	if err := mysql.DB.AutoMigrate(
		&model.User{},
		&model.Group{},
		&model.Post{},
		&model.Comment{},
		&model.Follow{},
		&model.FollowOutbox{},
	); err != nil {
		panic(err)
	}

	// follow events: outbox -> kafka and/or notification mail,
	// log fallback when neither is configured
	sender := buildSender()
	relayer := service.NewOutboxRelayer(mysql.DB, sender)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go relayer.Run(ctx)

	r := router.InitRouter(mysql.DB)
	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

func buildSender() service.Sender {
	var senders []service.Sender

	if brokers := config.KafkaBrokers(); brokers != "" {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: strings.Split(brokers, ","),
			Topic:   config.KafkaTopic(),
		})
		senders = append(senders, service.KafkaSender(producer))
	}

	if host := config.GetEnv("SMTP_HOST", ""); host != "" {
		port, _ := strconv.Atoi(config.GetEnv("SMTP_PORT", "587"))
		cfg := pkg.SMTPConfig{
			Host:     host,
			Port:     port,
			Username: config.GetEnv("SMTP_USERNAME", ""),
			Password: config.GetEnv("SMTP_PASSWORD", ""),
			From:     config.GetEnv("SMTP_FROM", "Yatube <no-reply@yatube.local>"),
		}
		senders = append(senders, service.EmailSender(cfg, mysql.DB))
	}

	if len(senders) == 0 {
		return service.LogSender
	}
	return service.ChainSenders(senders...)
}
