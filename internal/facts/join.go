//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package facts

import (
	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
)

// BuildFactTable joins orders, sales, products and customers with inner
// joins on Order.ID, Product.ID and Customer.ID.
//
// Output rows follow order row order, then sale row order within an
// order. Orders and customers are indexed by first occurrence of their ID,
// so every sale contributes at most one row. Products must already be
// deduplicated.
func BuildFactTable(
	orders []ParsedOrder,
	sales []dataset.Sale,
	products []dataset.Product,
	customers []dataset.Customer,
) (*Table, error) {
	if err := checkKeys(orders, sales, customers); err != nil {
		return nil, err
	}

	productByID := make(map[string]*dataset.Product, len(products))
	for i := range products {
		if _, ok := productByID[products[i].ID]; !ok {
			productByID[products[i].ID] = &products[i]
		}
	}

	customerByID := make(map[string]*dataset.Customer, len(customers))
	for i := range customers {
		if _, ok := customerByID[customers[i].ID]; !ok {
			customerByID[customers[i].ID] = &customers[i]
		}
	}

	salesByOrder := make(map[string][]int, len(orders))
	for i, s := range sales {
		salesByOrder[s.OrderID] = append(salesByOrder[s.OrderID], i)
	}

	rows := make([]Row, 0, len(sales))
	seenOrder := make(map[string]bool, len(orders))
	for _, o := range orders {
		if o.ID == "" || seenOrder[o.ID] {
			continue
		}
		seenOrder[o.ID] = true

		cust, ok := customerByID[o.CustomerID]
		if !ok {
			continue
		}
		for _, si := range salesByOrder[o.ID] {
			s := &sales[si]
			prod, ok := productByID[s.ProductID]
			if !ok {
				continue
			}
			rows = append(rows, Row{
				OrderID:      o.ID,
				CustomerID:   o.CustomerID,
				OrderDate:    o.Date,
				ProductID:    prod.ID,
				Category:     prod.Category,
				SubCategory:  prod.SubCategory,
				ProductName:  prod.Name,
				Sales:        s.Sales,
				Profit:       s.Profit,
				ShippingCost: s.ShippingCost,
				ShipMode:     s.ShipMode,
				Country:      cust.Country,
				City:         cust.City,
			})
		}
	}

	return &Table{rows: rows}, nil
}

// checkKeys fails when a non-empty table has a join key column with no
// values at all. Such a table would silently drop every fact.
func checkKeys(orders []ParsedOrder, sales []dataset.Sale, customers []dataset.Customer) error {
	checks := []struct {
		table  string
		column string
		n      int
		key    func(i int) string
	}{
		{dataset.TableOrders, dataset.ColOrderID, len(orders), func(i int) string { return orders[i].ID }},
		{dataset.TableOrders, dataset.ColCustomerID, len(orders), func(i int) string { return orders[i].CustomerID }},
		{dataset.TableSales, dataset.ColOrderID, len(sales), func(i int) string { return sales[i].OrderID }},
		{dataset.TableSales, dataset.ColProductID, len(sales), func(i int) string { return sales[i].ProductID }},
		{dataset.TableCustomers, dataset.ColCustomerID, len(customers), func(i int) string { return customers[i].ID }},
	}

	for _, c := range checks {
		if c.n == 0 {
			continue
		}
		empty := true
		for i := 0; i < c.n; i++ {
			if c.key(i) != "" {
				empty = false
				break
			}
		}
		if empty {
			return &dataset.DataIntegrityError{Table: c.table, Column: c.column, Reason: "every value is empty"}
		}
	}
	return nil
}
