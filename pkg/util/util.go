package util

import (
	"math"
)

func RoundFloat(val float64, precision uint) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}

func ReverseG[T any](arr []T) []T {
	copyArr := make([]T, len(arr)) // should do on the copy )
	copy(copyArr, arr)
	for i, j := 0, len(copyArr)-1; i < j; i, j = i+1, j-1 {
		copyArr[i], copyArr[j] = copyArr[j], copyArr[i]
	}
	return copyArr
}

// PackCoordKey packs two rounded coordinates into one int64 key. Both halves
// go through uint32 so that negative coordinates round-trip.
func PackCoordKey(x, y int32) int64 {
	return int64(uint32(y))<<32 | int64(uint32(x))
}

func UnpackCoordKey(key int64) (int32, int32) {
	return int32(uint32(key)), int32(uint32(key>>32))
}
