package entities

type BookingEmailData struct {
	CustomerName   string
	BookingID      string
	Status         string
	StartFormatted string
	EndFormatted   string
	TotalAmount    int
	DepositAmount  int
	CurrentYear    int
}
