package core

import (
	"postalcore/internal/catalog"
	"postalcore/pkg/address"
	"postalcore/pkg/territory"
)

type (
	Territory = territory.Territory
	Kind      = territory.Kind
	Graph     = territory.Graph
	Resolver  = territory.Resolver
	Alias     = territory.Alias

	Dataset       = catalog.Dataset
	CatalogSource = catalog.Source

	Address   = address.Address
	Fields    = address.Fields
	Violation = address.Violation
	Report    = address.Report
)

const (
	KindCountry     = territory.KindCountry
	KindSubdivision = territory.KindSubdivision
	KindAny         = territory.KindAny
)
