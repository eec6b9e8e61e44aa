package main

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mednex/mednex/internal/domain/admin"
)

func seedDisease(t *testing.T, repo admin.DiseaseRepository, name, treatment string) {
	t.Helper()
	err := repo.Create(context.Background(), &admin.Disease{
		Name:        name,
		Description: "test entry",
		Symptoms:    []string{"fever"},
		Treatment:   treatment,
		Severity:    admin.SeverityLow,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCatalogTreatments_SplitsCommaSeparatedField(t *testing.T) {
	repo := admin.NewDiseaseRepoMem()
	seedDisease(t, repo, "Influenza", "antiviral medication, rest, fluids")

	src := NewCatalogTreatments(repo)
	got, err := src.TreatmentsForDisease(context.Background(), "influenza")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"antiviral medication", "rest", "fluids"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("treatments = %v, want %v", got, want)
	}
}

func TestCatalogTreatments_MatchesNameCaseInsensitively(t *testing.T) {
	repo := admin.NewDiseaseRepoMem()
	seedDisease(t, repo, "Common Cold", "rest")

	src := NewCatalogTreatments(repo)
	got, err := src.TreatmentsForDisease(context.Background(), "  COMMON COLD ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != "rest" {
		t.Errorf("treatments = %v, want [rest]", got)
	}
}

func TestCatalogTreatments_UnknownDisease(t *testing.T) {
	repo := admin.NewDiseaseRepoMem()
	seedDisease(t, repo, "Influenza", "rest")

	src := NewCatalogTreatments(repo)
	got, err := src.TreatmentsForDisease(context.Background(), "malaria")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil treatments, got %v", got)
	}
}

func TestCatalogTreatments_BlankTreatmentField(t *testing.T) {
	repo := admin.NewDiseaseRepoMem()
	seedDisease(t, repo, "Influenza", "  ,  ")

	src := NewCatalogTreatments(repo)
	got, err := src.TreatmentsForDisease(context.Background(), "influenza")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil treatments, got %v", got)
	}
}

type failingDiseaseRepo struct {
	admin.DiseaseRepository
}

func (f *failingDiseaseRepo) List(context.Context, int, int) ([]*admin.Disease, error) {
	return nil, errors.New("catalog offline")
}

func TestCatalogTreatments_RepoError(t *testing.T) {
	src := NewCatalogTreatments(&failingDiseaseRepo{})
	if _, err := src.TreatmentsForDisease(context.Background(), "influenza"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
