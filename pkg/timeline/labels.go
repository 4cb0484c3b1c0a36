package timeline

// MonthLabels are the short month names shown along the axis.
var MonthLabels = []string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// QuarterLabels are the quarter names shown above the month labels.
var QuarterLabels = []string{"Q1", "Q2", "Q3", "Q4"}

// MonthLabel returns the short name for month, or "" when month is off the axis.
func MonthLabel(month int) string {
	if month < FirstMonth || month > LastMonth {
		return ""
	}
	return MonthLabels[month-1]
}

// QuarterOf returns the quarter (1-4) containing month.
func QuarterOf(month int) int {
	return (ClampMonth(month) + 2) / 3
}

// QuarterLabel returns "Q1".."Q4", or "" for an unknown quarter.
func QuarterLabel(quarter int) string {
	if quarter < 1 || quarter > len(QuarterLabels) {
		return ""
	}
	return QuarterLabels[quarter-1]
}

// MonthsInQuarter lists the three months of quarter.
func MonthsInQuarter(quarter int) []int {
	if quarter < 1 || quarter > len(QuarterLabels) {
		return nil
	}
	first := (quarter-1)*3 + 1
	return []int{first, first + 1, first + 2}
}
