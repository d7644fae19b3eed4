// seed puebla la base con datos de demostración: usuarios, fabricantes,
// proveedores con sus mapeos, clientes y un catálogo mínimo de partes.
// Es idempotente: los registros duplicados se saltan.
//
// Uso: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sathler/bomlink/internal/domain"
	"github.com/sathler/bomlink/internal/domain/entity"
	"github.com/sathler/bomlink/internal/infrastructure/postgres"
	"github.com/sathler/bomlink/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	pool, err := postgres.NewPool(context.Background(), cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	manufacturerRepo := postgres.NewManufacturerRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	partRepo := postgres.NewPartRepository(pool)

	// Usuarios de demostración. Password = username + "123".
	users := []struct{ username, email, first, last, role string }{
		{"admin", "admin@bomlink.local", "Ana", "Gómez", entity.RoleAdmin},
		{"pm", "pm@bomlink.local", "Pedro", "Martínez", entity.RolePM},
		{"receiving", "receiving@bomlink.local", "Rosa", "Díaz", entity.RoleReceiving},
	}
	for _, u := range users {
		existing, err := userRepo.FindByUsername(u.username)
		if err != nil {
			fail("buscar usuario", err)
		}
		if existing != nil {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(u.username+"123"), bcrypt.DefaultCost)
		if err != nil {
			fail("hashear password", err)
		}
		now := time.Now()
		err = userRepo.Create(&entity.User{
			ID:           uuid.New().String(),
			Username:     u.username,
			Email:        u.email,
			FirstName:    u.first,
			LastName:     u.last,
			PasswordHash: string(hash),
			Role:         u.role,
			Status:       "active",
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			fail("crear usuario", err)
		}
		fmt.Printf("usuario %s creado\n", u.username)
	}

	manufacturers := map[string]int64{}
	for _, name := range []string{"Schneider Electric", "Phoenix Contact", "Mersen"} {
		m := &entity.Manufacturer{Name: name}
		if err := manufacturerRepo.Create(m); err != nil {
			if !errors.Is(err, domain.ErrDuplicate) {
				fail("crear fabricante", err)
			}
			m = findManufacturer(manufacturerRepo, name)
		}
		manufacturers[name] = m.ID
	}

	suppliers := map[string]int64{}
	for _, s := range []entity.Supplier{
		{Name: "Graybar", SupplierCode: "GRB", ContactName: "Ventas", ContactEmail: "quotes@graybar.example"},
		{Name: "House of Electric", SupplierCode: "HOE", ContactName: "Cotizaciones", ContactEmail: "rfq@houseofelectric.example"},
		{Name: "Hammond", SupplierCode: "HAM", ContactName: "Ventas", ContactEmail: "sales@hammond.example"},
	} {
		sup := s
		if err := supplierRepo.Create(&sup); err != nil {
			if !errors.Is(err, domain.ErrDuplicate) {
				fail("crear proveedor", err)
			}
			sup = *findSupplier(supplierRepo, s.Name)
		}
		suppliers[sup.Name] = sup.ID
	}

	// Mapeos proveedor→fabricante: Schneider con dos proveedores para poder
	// demostrar la desambiguación en la generación de RFQs.
	mappings := []struct{ supplier, manufacturer string }{
		{"Graybar", "Schneider Electric"},
		{"House of Electric", "Schneider Electric"},
		{"House of Electric", "Phoenix Contact"},
		{"Hammond", "Mersen"},
	}
	for _, mp := range mappings {
		err := supplierRepo.AddManufacturer(suppliers[mp.supplier], manufacturers[mp.manufacturer])
		if err != nil && !errors.Is(err, domain.ErrDuplicate) {
			fail("mapear proveedor", err)
		}
	}

	for _, c := range []entity.Customer{
		{Name: "Norte Ingeniería", CustomerCode: "NOR", ContactName: "Compras"},
		{Name: "Planta Sur", CustomerCode: "SUR", ContactName: "Mantenimiento"},
	} {
		cust := c
		if err := customerRepo.Create(&cust); err != nil && !errors.Is(err, domain.ErrDuplicate) {
			fail("crear cliente", err)
		}
	}

	parts := []struct {
		number, description, manufacturer, unit string
		labour                                  float64
	}{
		{"LC1D18M7", "Contactor 18A bobina 220VAC", "Schneider Electric", entity.UnitEach, 0.5},
		{"UT25", "Borne de paso 2.5mm", "Phoenix Contact", entity.UnitEach, 0.1},
		{"A4J600", "Fusible 600A clase J", "Mersen", entity.UnitEach, 0.25},
	}
	for _, p := range parts {
		normalized := entity.NormalizePartNumber(p.number)
		existing, err := partRepo.GetByPartNumber(normalized)
		if err != nil {
			fail("buscar parte", err)
		}
		if existing != nil {
			continue
		}
		err = partRepo.Create(&entity.Part{
			PartNumber:     normalized,
			Description:    p.description,
			ManufacturerID: manufacturers[p.manufacturer],
			Unit:           p.unit,
			Labour:         decimal.NewFromFloat(p.labour),
		})
		if err != nil {
			fail("crear parte", err)
		}
		fmt.Printf("parte %s creada\n", normalized)
	}

	fmt.Println("seed completado")
}

func fail(op string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", op, err)
	os.Exit(1)
}

func findManufacturer(repo *postgres.ManufacturerRepo, name string) *entity.Manufacturer {
	list, err := repo.List(500, 0)
	if err != nil {
		fail("listar fabricantes", err)
	}
	for _, m := range list {
		if m.Name == name {
			return m
		}
	}
	fail("buscar fabricante", fmt.Errorf("%s no encontrado", name))
	return nil
}

func findSupplier(repo *postgres.SupplierRepo, name string) *entity.Supplier {
	list, err := repo.List(500, 0)
	if err != nil {
		fail("listar proveedores", err)
	}
	for _, s := range list {
		if s.Name == name {
			return s
		}
	}
	fail("buscar proveedor", fmt.Errorf("%s no encontrado", name))
	return nil
}
