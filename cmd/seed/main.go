package main

import (
	"context"
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"fossilario/internal/config"
	"fossilario/internal/db"
	"fossilario/internal/model"
	"fossilario/internal/repository"
)

const (
	seedEmail    = "curador@fossilario.dev"
	seedPassword = "fossilario"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Fossil{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	fossilRepo := repository.NewFossilRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, seedEmail)
	switch {
	case err == nil:
		log.Printf("Seed user already exists (id=%d)", user.ID)
	case errors.Is(err, gorm.ErrRecordNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash seed password: %v", err)
		}
		role := "Curador"
		affiliation := "Museu de Paleobotânica"
		city, country := "Recife", "Brasil"
		user = &model.User{
			Nome:            "Curadoria Fossilário",
			Email:           seedEmail,
			Senha:           string(hash),
			Role:            &role,
			Affiliation:     &affiliation,
			City:            &city,
			Country:         &country,
			ShowName:        true,
			ShowAffiliation: true,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create seed user: %v", err)
		}
		log.Printf("Created seed user (id=%d)", user.ID)
	default:
		log.Fatalf("Failed to look up seed user: %v", err)
	}

	_, total, err := fossilRepo.List(ctx, repository.FossilFilter{Limit: 1})
	if err != nil {
		log.Fatalf("Failed to count fossils: %v", err)
	}
	if total > 0 {
		log.Printf("Fossils already present (%d rows), nothing to do", total)
		return
	}

	created := 0
	for _, f := range seedFossils(user.ID) {
		if err := fossilRepo.Create(ctx, &f); err != nil {
			log.Printf("Warning: failed to create %s: %v", f.Especie, err)
			continue
		}
		created++
	}
	log.Printf("Seed complete: %d fossils created", created)
}

func seedFossils(ownerID uint) []model.Fossil {
	desc := func(s string) *string { return &s }
	return []model.Fossil{
		{
			Especie:     "Lepidodendron aculeatum",
			Familia:     "Lepidodendraceae",
			Periodo:     "Carbonífero",
			Localizacao: "Europa",
			Descricao:   desc("Licófita arborescente com cicatrizes foliares romboidais."),
			UserID:      ownerID,
		},
		{
			Especie:     "Psaronius brasiliensis",
			Familia:     "Psaroniaceae",
			Periodo:     "Permiano",
			Localizacao: "Bacia do Parnaíba, Brasil",
			Descricao:   desc("Samambaia arborescente com manto de raízes adventícias."),
			UserID:      ownerID,
		},
		{
			Especie:     "Glossopteris indica",
			Familia:     "Glossopteridaceae",
			Periodo:     "Permiano",
			Localizacao: "Gondwana",
			Descricao:   desc("Folhas em forma de língua com nervação reticulada."),
			UserID:      ownerID,
		},
		{
			Especie:     "Archaeopteris hibernica",
			Familia:     "Archaeopteridaceae",
			Periodo:     "Devoniano",
			Localizacao: "Irlanda",
			UserID:      ownerID,
		},
		{
			Especie:     "Calamites suckowii",
			Familia:     "Calamitaceae",
			Periodo:     "Carbonífero",
			Localizacao: "América do Norte",
			Descricao:   desc("Caule articulado estriado, aparentado às cavalinhas atuais."),
			UserID:      ownerID,
		},
	}
}
