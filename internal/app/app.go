// Package app assembles the dispatch runtime. Everything is wired once at
// process start; nothing here is mutated afterwards.
package app

import (
	"gorm.io/gorm"

	"loanserve-backend/internal/adapter/notifier"
	"loanserve-backend/internal/adapter/repository/mysql"
	"loanserve-backend/internal/dispatch"
	"loanserve-backend/internal/domain/document"
	notifDomain "loanserve-backend/internal/domain/notification"
	appUC "loanserve-backend/internal/usecase/application"
	docUC "loanserve-backend/internal/usecase/document"
	loanUC "loanserve-backend/internal/usecase/loan"
	notifUC "loanserve-backend/internal/usecase/notification"
	paymentUC "loanserve-backend/internal/usecase/payment"
	queryUC "loanserve-backend/internal/usecase/query"
	userUC "loanserve-backend/internal/usecase/user"
)

const (
	CapNotificationSink = "notification.sink"
	CapTextExtractor    = "document.extractor"
)

type Options struct {
	DB            *gorm.DB
	Sink          notifDomain.Sink // nil → notifier.NoopSink
	Extractor     document.Extractor
	AnnualRatePct float64
}

type App struct {
	Registry   *dispatch.Registry
	Dispatcher *dispatch.Dispatcher
}

func New(opts Options) *App {
	sink := opts.Sink
	if sink == nil {
		sink = notifier.NoopSink{}
	}

	users := mysql.NewUserRepository(opts.DB)
	loans := mysql.NewLoanRepository(opts.DB)
	payments := mysql.NewPaymentRepository(opts.DB)
	notifications := mysql.NewNotificationRepository(opts.DB)
	unit := mysql.NewGormUoW(opts.DB)

	reg := dispatch.NewRegistry()
	reg.RegisterSingleton(CapNotificationSink, sink)
	if opts.Extractor != nil {
		reg.RegisterSingleton(CapTextExtractor, opts.Extractor)
	}

	userUsecase := userUC.NewUsecase(users)
	dispatch.Register(reg, userUsecase.Register)
	dispatch.Register(reg, userUsecase.Update)
	dispatch.Register(reg, userUsecase.Deactivate)
	dispatch.Register(reg, userUsecase.Get)

	applicationUsecase := appUC.NewUsecase(unit, sink, opts.AnnualRatePct)
	dispatch.Register(reg, applicationUsecase.Apply)
	dispatch.Register(reg, applicationUsecase.Approve)
	dispatch.Register(reg, applicationUsecase.Reject)

	loanUsecase := loanUC.NewUsecase(unit, sink)
	dispatch.Register(reg, loanUsecase.Disburse)
	dispatch.Register(reg, loanUsecase.Reject)
	dispatch.Register(reg, loanUsecase.Close)

	paymentUsecase := paymentUC.NewUsecase(unit, sink)
	dispatch.Register(reg, paymentUsecase.Record)

	queryUsecase := queryUC.NewUsecase(loans, payments, users)
	dispatch.Register(reg, queryUsecase.GetLoan)
	dispatch.Register(reg, queryUsecase.ListLoans)
	dispatch.Register(reg, queryUsecase.PortfolioReport)
	dispatch.Register(reg, queryUsecase.UserReport)

	notificationUsecase := notifUC.NewUsecase(notifications)
	dispatch.Register(reg, notificationUsecase.List)
	dispatch.Register(reg, notificationUsecase.MarkRead)

	if opts.Extractor != nil {
		documentUsecase := docUC.NewUsecase(opts.Extractor)
		dispatch.Register(reg, documentUsecase.Extract)
	}

	return &App{Registry: reg, Dispatcher: dispatch.NewDispatcher(reg)}
}
