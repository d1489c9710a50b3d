package config

import (
	"coinvest-service/src/internal/delivery/http"
	"coinvest-service/src/internal/delivery/http/middleware"
	"coinvest-service/src/internal/delivery/http/route"
	"coinvest-service/src/internal/gateway/identity"
	"coinvest-service/src/internal/gateway/messaging"
	"coinvest-service/src/internal/gateway/notification"
	"coinvest-service/src/internal/gateway/storage"
	"coinvest-service/src/internal/repository"
	"coinvest-service/src/internal/usecase"
	"coinvest-service/src/internal/worker"
	"coinvest-service/src/pkg/databases/mysql"
	kafkaPkgConfluent "coinvest-service/src/pkg/kafka/confluent"
	"coinvest-service/src/pkg/log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	DB          mysql.DBInterface
	App         *fiber.App
	Log         log.Log
	Validate    *validator.Validate
	Config      *viper.Viper
	Producer    kafkaPkgConfluent.Producer
	Redis       redis.UniversalClient
	AsynqClient *asynq.Client
	Async       *asynq.ServeMux
}

func Bootstrap(config *BootstrapConfig) {
	// setup repositories
	profileRepository := repository.NewProfileRepository(config.DB)
	requestRepository := repository.NewRequestRepository(config.DB)
	paymentMethodRepository := repository.NewPaymentMethodRepository(config.DB)

	// setup gateways
	ledgerProducer := messaging.NewLedgerProducer(config.Producer, config.Log)
	uploader := storage.NewCloudinaryUploader(config.Config, config.Log)
	identityProvider := identity.NewHTTPProvider(config.Config, config.Log)
	emailSender := notification.NewMailgunSender(config.Config, config.Log)
	smsSender := notification.NewTwilioSender(config.Config, config.Log)

	// setup use cases
	profileUseCase := usecase.NewProfileUseCase(
		config.Log,
		config.Validate,
		profileRepository,
		requestRepository,
		uploader,
		config.Config,
	)

	adminUseCase := usecase.NewAdminUseCase(
		config.Log,
		config.Validate,
		profileRepository,
		requestRepository,
		identityProvider,
		ledgerProducer,
		config.Config,
	)

	paymentMethodUseCase := usecase.NewPaymentMethodUseCase(
		config.Log,
		config.Validate,
		paymentMethodRepository,
		config.Redis,
	)

	otpUseCase := usecase.NewOtpUseCase(
		config.Log,
		config.Validate,
		config.Redis,
		config.AsynqClient,
	)

	// setup controller
	profileController := http.NewProfileController(profileUseCase, paymentMethodUseCase, otpUseCase, config.Log)
	adminController := http.NewAdminController(adminUseCase, paymentMethodUseCase, config.Log)

	// setup middleware
	authMiddleware := middleware.VerifyBearer(config.Config)

	// setup background worker handlers
	notificationWorker := worker.NewNotificationWorker(config.Log, emailSender, smsSender)
	config.Async.HandleFunc(worker.TypeOtpDelivery, notificationWorker.HandleOtpDelivery)

	routeConfig := route.RouteConfig{
		App:               config.App,
		ProfileController: profileController,
		AdminController:   adminController,
		AuthMiddleware:    authMiddleware,
	}
	routeConfig.Setup()
}
