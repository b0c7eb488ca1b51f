package fakeapi

import (
	"github.com/andyle182810/storefront/money"
	"github.com/andyle182810/storefront/shopapi"
)

func SeedCategories() []shopapi.Category {
	return []shopapi.Category{
		{ID: 1, Name: "Electronics", Description: "Phones, audio and accessories"},
		{ID: 2, Name: "Books", Description: "Print and paperback"},
		{ID: 3, Name: "Home", Description: "Kitchen and living"},
	}
}

func SeedProducts() []shopapi.Product {
	return []shopapi.Product{
		{
			ID: 1, Name: "Wireless Headphones", Description: "Over-ear, noise cancelling",
			Price: money.RequireFromString("129.99"), StockQuantity: 25,
			ImageURL: "/images/headphones.jpg", CategoryID: 1,
		},
		{
			ID: 2, Name: "USB-C Charger", Description: "65W GaN wall charger",
			Price: money.RequireFromString("39.50"), StockQuantity: 100,
			ImageURL: "/images/charger.jpg", CategoryID: 1,
		},
		{
			ID: 3, Name: "The Go Programming Language", Description: "Donovan and Kernighan",
			Price: money.RequireFromString("44.95"), StockQuantity: 12,
			ImageURL: "/images/gopl.jpg", CategoryID: 2,
		},
		{
			ID: 4, Name: "Pour-Over Kettle", Description: "1L gooseneck, stainless steel",
			Price: money.RequireFromString("59.00"), StockQuantity: 8,
			ImageURL: "/images/kettle.jpg", CategoryID: 3,
		},
		{
			ID: 5, Name: "Linen Throw", Description: "Stonewashed, 130x170cm",
			Price: money.RequireFromString("74.25"), StockQuantity: 0,
			ImageURL: "/images/throw.jpg", CategoryID: 3,
		},
	}
}
