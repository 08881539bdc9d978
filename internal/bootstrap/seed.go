package bootstrap

import (
	"log"

	"gorm.io/gorm"

	"pkfit.com.br/pkfitsystem/internal/entity"
	"pkfit.com.br/pkfitsystem/pkg/password"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.Academy{},
		&entity.User{},
		&entity.Workout{},
		&entity.WorkoutRequest{},
	)
}

// SeedGlobalAdmin guarantees the platform always has one global admin
// account to bootstrap from.
func SeedGlobalAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("role = ?", entity.RoleAdminGlobal).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Global admin already exists, skipping seed")
		return nil
	}

	hash, err := password.Hash("Admin123")
	if err != nil {
		return err
	}

	admin := entity.User{
		Name:         "Administrador PK Fit",
		Email:        "admin@pkfit.com.br",
		PasswordHash: &hash,
		Role:         entity.RoleAdminGlobal,
		Status:       entity.StatusActive,
		FirstAccess:  false,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("✅ Global admin seeded successfully")
	log.Println("   Email: admin@pkfit.com.br")
	log.Println("   Password: Admin123")

	return nil
}

// SeedDemoAcademy creates a demo academy with one user per role plus
// sample workouts and requests. Development only.
func SeedDemoAcademy(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.Academy{}).
		Where("cnpj = ?", "12.345.678/0001-90").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	academy := entity.Academy{
		Name:            "Academia PK Demo",
		CNPJ:            "12.345.678/0001-90",
		ResponsibleName: "Carlos Mendes",
		Phone:           "(11) 99999-0000",
		Status:          entity.StatusActive,
		PaymentStatus:   entity.PaymentPaid,
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&academy).Error; err != nil {
			return err
		}

		hash, err := password.Hash("Senha123")
		if err != nil {
			return err
		}

		users := []entity.User{
			{
				Name:         "Carlos Mendes",
				Email:        "carlos@pkdemo.com.br",
				PasswordHash: &hash,
				Role:         entity.RoleAdminAcademia,
				AcademyID:    &academy.ID,
			},
			{
				Name:         "Fernanda Lima",
				Email:        "fernanda@pkdemo.com.br",
				PasswordHash: &hash,
				Role:         entity.RoleProfessor,
				AcademyID:    &academy.ID,
				Specialty:    stringPtr("Musculação"),
			},
			{
				Name:         "Ricardo Souza",
				Email:        "ricardo@pkdemo.com.br",
				PasswordHash: &hash,
				Role:         entity.RolePersonal,
				AcademyID:    &academy.ID,
				Specialty:    stringPtr("Funcional"),
			},
			{
				Name:      "Juliana Costa",
				Email:     "juliana@pkdemo.com.br",
				Role:      entity.RoleAluno,
				AcademyID: &academy.ID,
				// No password yet: exercises the first-access flow.
				FirstAccess: true,
			},
		}

		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}

		professor := users[1]
		student := users[3]

		split := `{"monday":["Supino reto","Crucifixo"],"wednesday":["Agachamento","Leg press"],"friday":["Remada curvada","Pulldown"]}`
		workout := entity.Workout{
			AcademyID:   academy.ID,
			StudentID:   student.ID,
			ProfessorID: &professor.ID,
			Name:        "Treino de adaptação",
			Description: "Primeiro ciclo de treinos da aluna",
			ModelType:   entity.ModelABC,
			Objective:   entity.ObjectiveHypertrophy,
			WeeklySplit: &split,
		}
		if err := tx.Create(&workout).Error; err != nil {
			return err
		}

		request := entity.WorkoutRequest{
			AcademyID: academy.ID,
			StudentID: student.ID,
			Type:      entity.RequestNewWorkout,
			Status:    entity.RequestPending,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		log.Println("✅ Demo academy seeded successfully")
		return nil
	})
}

func stringPtr(s string) *string {
	return &s
}
