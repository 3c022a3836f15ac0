package certificates

import (
	"embed"

	"github.com/iota-uz/certificates-backend/modules/certificates/infrastructure/persistence"
	"github.com/iota-uz/certificates-backend/modules/certificates/presentation/controllers"
	"github.com/iota-uz/certificates-backend/modules/certificates/services"
	"github.com/iota-uz/certificates-backend/pkg/application"
)

//go:embed infrastructure/persistence/schema/certificates-schema.sql
var migrationFiles embed.FS

// SchemaSQL returns the module's bootstrap DDL.
func SchemaSQL() (string, error) {
	data, err := migrationFiles.ReadFile("infrastructure/persistence/schema/certificates-schema.sql")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewCertificateService(
			persistence.NewCertificateRepository(),
			persistence.NewEventRepository(),
			persistence.NewTagRepository(),
			persistence.NewCommentRepository(),
			persistence.NewValidationRepository(),
			persistence.NewStatusRepository(),
			app.EventBus(),
			app.Logger(),
		),
	)

	app.RegisterControllers(
		controllers.NewCertificateAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "certificates"
}
