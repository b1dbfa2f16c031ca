package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "staff-welfare-fund/internal/adapter/http"
	mw "staff-welfare-fund/internal/adapter/middleware"
	"staff-welfare-fund/internal/adapter/repository/mysql"
	"staff-welfare-fund/internal/config"
	"staff-welfare-fund/internal/domain/fund"
	"staff-welfare-fund/internal/domain/ledger"
	"staff-welfare-fund/internal/domain/loanacct"
	"staff-welfare-fund/internal/domain/member"
	"staff-welfare-fund/internal/domain/payment"
	"staff-welfare-fund/internal/infrastructure/cache"
	"staff-welfare-fund/internal/infrastructure/db"
	"staff-welfare-fund/internal/usecase/fundops"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatal(err)
	}
	if err := gdb.AutoMigrate(
		&member.Member{},
		&loanacct.Loan{},
		&payment.Payment{},
		&ledger.Entry{},
		&fund.Settings{},
	); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	seed := fund.DefaultSettings(cfg.SponsorInitialInvestment, cfg.AnnualInterestRate)
	if err := mysql.NewSettingsRepository(gdb).Seed(ctx, seed); err != nil {
		log.Fatal(err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatal(err)
	}

	summaryTTL := time.Duration(cfg.SummaryTTLSecs) * time.Second
	svc := fundops.NewService(
		mysql.NewGormUoW(gdb),
		fundops.WithCache(cache.NewSummaryCache(rdb, summaryTTL)),
	)

	h := httpadp.NewHandler()
	mh := httpadp.NewMemberHandler(svc)
	lh := httpadp.NewLoanHandler(svc)
	ph := httpadp.NewPaymentHandler(svc)
	fh := httpadp.NewFundHandler(svc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())

	idempTTL := time.Duration(cfg.IdempTTLSecs) * time.Second
	idem := mw.IdempotencyMiddleware(rdb, idempTTL)

	// routes
	e.GET("/health", h.Health)

	e.POST("/members", mh.CreateMember, idem)
	e.DELETE("/members/:member_id", mh.DeleteMember, idem)
	e.POST("/members/:member_id/suspend", mh.SuspendMember, idem)
	e.POST("/members/:member_id/reactivate", mh.ReactivateMember, idem)
	e.POST("/members/:member_id/cashout", mh.CashOutMember, idem)

	e.POST("/loans", lh.CreateLoan, idem)
	e.POST("/loans/:loan_id/complete", lh.CompleteLoan, idem)
	e.GET("/loans/:loan_id", lh.GetLoan)
	e.GET("/loans/schedule", lh.GetSchedule)

	e.POST("/payments", ph.CreatePayment, idem)
	e.PUT("/payments/:payment_id", ph.EditPayment, idem)
	e.DELETE("/payments/:payment_id", ph.DeletePayment, idem)

	e.POST("/fund/interest", fh.ApplyInterest, idem)
	e.GET("/fund/summary", fh.GetSummary)
	e.POST("/fund/sponsor/investments", fh.SponsorInvestment, idem)
	e.POST("/fund/sponsor/withdrawals", fh.SponsorWithdrawal, idem)
	e.POST("/fund/reconcile", fh.Reconcile, idem)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
