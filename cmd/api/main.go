package main

import (
	"fmt"
	"os"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/invoice"
	"app/internal/notify"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

func (i *jwtIssuer) Issue(userID int64, email string, role model.Role, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub":   fmt.Sprint(userID),
		"email": email,
		"role":  string(role),
		"iat":   now.Unix(),
		"exp":   expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func main() {
	_ = godotenv.Load()

	zerolog.TimeFieldFormat = time.RFC3339
	if os.Getenv("GO_ENV") != "prod" {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	cfg, err := config.Load()
	if err != nil {
		zlog.Fatal().Err(err).Msg("bad configuration")
	}

	gormDB, err := db.Connect()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := gormDB.AutoMigrate(
		&model.Order{},
		&model.StatusHistoryEntry{},
		&model.OrderNote{},
		&model.BankAccount{},
		&model.InvoiceCounter{},
		&model.Shop{},
		&model.Product{},
		&model.AdminUser{},
	); err != nil {
		zlog.Fatal().Err(err).Msg("migration failed")
	}

	if err := seed(gormDB, cfg); err != nil {
		zlog.Fatal().Err(err).Msg("seed failed")
	}

	store, err := invoice.NewFileStore(cfg.InvoiceDir)
	if err != nil {
		zlog.Fatal().Err(err).Msg("invoice dir not writable")
	}

	txManager := infraRepo.NewTxManagerGorm(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	adminUserRepo := infraRepo.NewAdminUserGormRepository(gormDB)

	var mailer usecase.ConfirmationMailer
	if m := notify.New(cfg); m != nil {
		mailer = m
	}

	issuer := &jwtIssuer{secret: []byte(cfg.JWTSecret), accessTTL: 15 * time.Minute}

	quoteUC := usecase.NewQuoteUsecase(productRepo, cfg.Quote)
	productUC := usecase.NewProductUsecase(productRepo)
	orderUC := usecase.NewOrderUsecase(txManager, mailer, cfg.Quote)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)
	bankAccountUC := usecase.NewBankAccountUsecase(txManager)
	shopUC := usecase.NewShopUsecase(txManager)
	exportUC := usecase.NewExportUsecase(txManager)
	invoiceUC := usecase.NewInvoiceUsecase(txManager, invoice.NewPDFRenderer(store), config.BrandForDomain)
	authUC := usecase.NewAuthUsecase(adminUserRepo, issuer)

	e := server.New(cfg, server.Handlers{
		Quote:       handler.NewQuoteHandler(quoteUC, productUC),
		Order:       handler.NewOrderHandler(orderUC),
		Auth:        handler.NewAuthHandler(authUC),
		AdminOrder:  handler.NewAdminOrderHandler(adminOrderUC, orderUC, invoiceUC, exportUC),
		BankAccount: handler.NewAdminBankAccountHandler(bankAccountUC),
		Shop:        handler.NewAdminShopHandler(shopUC),
		Product:     handler.NewAdminProductHandler(productUC),
		InvoiceFile: handler.NewInvoiceFileHandler(store),
	})

	if err := server.Start(cfg, e); err != nil {
		zlog.Fatal().Err(err).Msg("shutdown failed")
	}
}

// seed provisions the records a fresh database needs to take orders: the
// admin login from the environment and the two standard products.
func seed(gormDB *gorm.DB, cfg config.Config) error {
	var admins int64
	if err := gormDB.Model(&model.AdminUser{}).Count(&admins).Error; err != nil {
		return err
	}
	if admins == 0 {
		if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
			zlog.Warn().Msg("no admin user and no ADMIN_EMAIL/ADMIN_PASSWORD set, admin login unavailable")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 12)
			if err != nil {
				return err
			}
			if err := gormDB.Create(&model.AdminUser{
				Email:        cfg.AdminEmail,
				PasswordHash: string(hash),
				Role:         model.RoleAdmin,
				IsActive:     true,
			}).Error; err != nil {
				return err
			}
			zlog.Info().Str("email", cfg.AdminEmail).Msg("seeded admin user")
		}
	}

	var products int64
	if err := gormDB.Model(&model.Product{}).Count(&products).Error; err != nil {
		return err
	}
	if products == 0 {
		defaults := []model.Product{
			{Code: "standard", Name: "Heizöl Standard", PricePerLiter: 0.89, IsActive: true},
			{Code: "premium", Name: "Heizöl Premium", PricePerLiter: 0.94, IsActive: true},
		}
		if err := gormDB.Create(&defaults).Error; err != nil {
			return err
		}
		zlog.Info().Msg("seeded default products")
	}

	return nil
}
