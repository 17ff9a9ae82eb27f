package dtos

import (
	"time"

	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/commission"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/company"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/contact"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/manufacturer"
	"github.com/fieldline/fieldline/modules/crm/domain/aggregates/product"
	"github.com/fieldline/fieldline/modules/crm/domain/entities/importlog"
)

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Meta    map[string]string `json:"meta,omitempty"`
}

type ContactView struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Title     string    `json:"title,omitempty"`
	CompanyID string    `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromContact(c contact.Contact) ContactView {
	view := ContactView{
		ID:        c.ID().String(),
		FirstName: c.FirstName(),
		LastName:  c.LastName(),
		Email:     c.Email(),
		Phone:     c.Phone(),
		Title:     c.Title(),
		CreatedAt: c.CreatedAt(),
	}
	if c.CompanyID() != nil {
		view.CompanyID = c.CompanyID().String()
	}
	return view
}

type CompanyView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromCompany(c company.Company) CompanyView {
	return CompanyView{
		ID:        c.ID().String(),
		Name:      c.Name(),
		Website:   c.Website(),
		Industry:  c.Industry(),
		City:      c.City(),
		CreatedAt: c.CreatedAt(),
	}
}

type ManufacturerView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromManufacturer(m manufacturer.Manufacturer) ManufacturerView {
	return ManufacturerView{
		ID:        m.ID().String(),
		Name:      m.Name(),
		CreatedAt: m.CreatedAt(),
	}
}

type ProductView struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku,omitempty"`
	Price          string    `json:"price"`
	ManufacturerID string    `json:"manufacturerId"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromProduct(p product.Product) ProductView {
	return ProductView{
		ID:             p.ID().String(),
		Name:           p.Name(),
		SKU:            p.SKU(),
		Price:          p.Price().String(),
		ManufacturerID: p.ManufacturerID().String(),
		CreatedAt:      p.CreatedAt(),
	}
}

type CommissionView struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	Amount    string    `json:"amount"`
	Rate      string    `json:"rate"`
	Period    string    `json:"period,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromCommission(c commission.Commission) CommissionView {
	return CommissionView{
		ID:        c.ID().String(),
		CompanyID: c.CompanyID().String(),
		Amount:    c.Amount().String(),
		Rate:      c.Rate().String(),
		Period:    c.Period(),
		Notes:     c.Notes(),
		CreatedAt: c.CreatedAt(),
	}
}

type ImportLogView struct {
	ID           string    `json:"id"`
	EntityType   string    `json:"entityType"`
	FileName     string    `json:"fileName"`
	TotalRows    int       `json:"totalRows"`
	SuccessCount int       `json:"successCount"`
	ErrorCount   int       `json:"errorCount"`
	ErrorList    string    `json:"errorList,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromImportLog(e importlog.Entry) ImportLogView {
	return ImportLogView{
		ID:           e.ID().String(),
		EntityType:   e.EntityType(),
		FileName:     e.FileName(),
		TotalRows:    e.TotalRows(),
		SuccessCount: e.SuccessCount(),
		ErrorCount:   e.ErrorCount(),
		ErrorList:    e.ErrorList(),
		CreatedAt:    e.CreatedAt(),
	}
}
