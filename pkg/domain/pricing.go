package domain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// FinneyKRW is the fixed finney → KRW display rate. No live rate lookup.
const FinneyKRW = 1600

// weiPerFinney is 10^15: one finney (milliether) in wei.
var weiPerFinney = new(big.Int).Exp(big.NewInt(10), big.NewInt(15), nil)

// ErrInvalidStayRange is returned when check-out is not after check-in.
var ErrInvalidStayRange = errors.New("check-out day must be after check-in day")

// TotalPrice computes the stay cost in finney: nights × per-day price,
// where nights = checkOut − checkIn in day-of-year offsets. The check-out
// day itself is not charged; guests vacate on that day.
func TotalPrice(checkIn, checkOut int, perDay uint64) (uint64, error) {
	if checkOut <= checkIn {
		return 0, ErrInvalidStayRange
	}
	return uint64(checkOut-checkIn) * perDay, nil
}

// ToKRW converts a finney amount to KRW at the fixed display rate.
func ToKRW(finney uint64) uint64 {
	return finney * FinneyKRW
}

// FinneyToWei converts a finney amount to the wei value attached to a
// payable transaction.
func FinneyToWei(finney uint64) *big.Int {
	return new(big.Int).Mul(new(big.Int).SetUint64(finney), weiPerFinney)
}

// FormatEther renders a wei balance as an ether string with up to four
// decimal places, trailing zeros trimmed.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}
	ether := new(big.Rat).SetFrac(wei, new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
	s := ether.FloatString(4)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}

// FormatKRW renders a KRW amount for display, e.g. "9600 KRW".
func FormatKRW(krw uint64) string {
	return fmt.Sprintf("%d KRW", krw)
}
