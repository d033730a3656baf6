package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Pricing constants
const (
	// HomeRatePerArea фиксированная ставка за единицу площади для категории HOME.
	// Для домашней уборки цена услуги считается как area * HomeRatePerArea,
	// поля basePrice/pricePerArea самой услуги при этом игнорируются.
	HomeRatePerArea int64 = 15000

	// AppliancePrice фиксированная доплата за каждую выбранную позицию
	// из микрокаталога бытовой техники (только для категории HOME)
	AppliancePrice int64 = 20000
)

// Appliance позиция микрокаталога чистки бытовой техники
type Appliance struct {
	ID    string
	Name  string
	Price int64
}

// Appliances микрокаталог доплат для домашней уборки.
// Каждая выбранная позиция добавляет одну фиксированную цену,
// количество не учитывается.
var Appliances = []Appliance{
	{ID: "washer", Name: "Washer cleaning", Price: AppliancePrice},
	{ID: "refrigerator", Name: "Refrigerator cleaning", Price: AppliancePrice},
	{ID: "aircon", Name: "Air conditioner cleaning", Price: AppliancePrice},
}

// ApplianceByID возвращает позицию микрокаталога по идентификатору
func ApplianceByID(id string) (Appliance, bool) {
	for _, a := range Appliances {
		if a.ID == id {
			return a, true
		}
	}
	return Appliance{}, false
}

// Business validation constants
const (
	MaxAddressLength        = 255
	MaxSpecialRequestLength = 1000
	MinQuantity             = 1
)

// AllStatuses список всех допустимых статусов бронирования
var AllStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
}
