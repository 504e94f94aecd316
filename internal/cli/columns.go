package cli

import (
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/BecomeWeasel/dapp-project/pkg/domain"
)

// RoomColumns is the column set for room listings.
var RoomColumns = []Column[domain.Room]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID"},
		Value:        func(r domain.Room) string { return strconv.FormatUint(r.ID, 10) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Name", WidthMax: 24},
		Value:        func(r domain.Room) string { return r.Name },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Location", WidthMax: 20},
		Value:        func(r domain.Room) string { return r.Location },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Active"},
		Value:        func(r domain.Room) string { return strconv.FormatBool(r.IsActive) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Price (finney/day)"},
		Value:        func(r domain.Room) string { return strconv.FormatUint(r.Price, 10) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Owner"},
		Value:        func(r domain.Room) string { return r.OwnerShort() },
	},
}

// RentColumns is the column set for rental listings.
var RentColumns = []Column[domain.Rent]{
	{
		ColumnConfig: table.ColumnConfig{Name: "ID"},
		Value:        func(r domain.Rent) string { return strconv.FormatUint(r.ID, 10) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Room"},
		Value:        func(r domain.Rent) string { return strconv.FormatUint(r.RoomID, 10) },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Check-in"},
		Value:        func(r domain.Rent) string { return r.CheckInDate() },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Check-out"},
		Value:        func(r domain.Rent) string { return r.CheckOutDate() },
	},
	{
		ColumnConfig: table.ColumnConfig{Name: "Renter"},
		Value:        func(r domain.Rent) string { return r.RenterShort() },
	},
}
