package nbc

const (
	// Sentence 4.1.4.1.(3): minimum partition allowance when partitions
	// are not shown on the drawings (kPa)
	PartitionAllowance = 1.0

	// Live loads on Low importance buildings may be multiplied by 0.8.
	LowImportanceLiveFactor = 0.8
)

// Sentence 4.1.5.6: dining areas up to 100 m² may use 2.4 kPa.
const (
	DiningAreaLimit = 100.0 // m²
	DiningAreaLoad  = 2.4   // kPa
)
