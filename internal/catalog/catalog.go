package catalog

// The CA Foundation syllabus is fixed: four subjects, each with an ordered
// topic list. Checklist state elsewhere is index-aligned to these lists, so
// the order here must never change between releases.

var subjects = []string{
	"Accounting",
	"Business Laws",
	"Quantitative Aptitude",
	"Business Economics",
}

var topics = map[string][]string{
	"Accounting": {
		"Theoretical Framework",
		"Accounting Process",
		"Bank Reconciliation Statement",
		"Inventories",
		"Depreciation and Amortisation",
		"Bills of Exchange and Promissory Notes",
		"Final Accounts of Sole Proprietors",
		"Financial Statements of Not-for-Profit Organizations",
		"Accounts from Incomplete Records",
		"Partnership and LLP Accounts",
		"Company Accounts",
	},
	"Business Laws": {
		"Indian Regulatory Framework",
		"The Indian Contract Act, 1872",
		"The Sale of Goods Act, 1930",
		"The Indian Partnership Act, 1932",
		"The Limited Liability Partnership Act, 2008",
		"The Companies Act, 2013",
		"The Negotiable Instruments Act, 1881",
	},
	"Quantitative Aptitude": {
		"Ratio, Proportion, Indices & Logarithms",
		"Equations",
		"Linear Inequalities",
		"Mathematics of Finance",
		"Permutations and Combinations",
		"Sequence and Series",
		"Sets, Relations & Functions",
		"Differential & Integral Calculus",
		"Number Series, Coding-Decoding, Odd Man Out",
		"Direction Tests",
		"Seating Arrangements",
		"Blood Relations",
		"Statistical Description of Data & Sampling",
		"Measures of Central Tendency & Dispersion",
		"Probability",
		"Theoretical Distributions",
	},
	"Business Economics": {
		"Introduction to Business Economics",
		"Theory of Demand and Supply",
		"Theory of Production and Cost",
		"Price Determination in Different Markets",
		"Determination of National Income",
		"Business Cycles",
		"Public Finance",
		"Money Market",
		"International Trade",
		"Indian Economy",
	},
}

// Subjects returns subject names in display order.
func Subjects() []string {
	out := make([]string, len(subjects))
	copy(out, subjects)
	return out
}

// Topics returns the ordered topic list for a subject, or nil if the subject
// is not part of the syllabus.
func Topics(subject string) []string {
	list, ok := topics[subject]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// TopicCount returns the number of topics for a subject (0 if unknown).
func TopicCount(subject string) int {
	return len(topics[subject])
}

// Valid reports whether subject is part of the syllabus.
func Valid(subject string) bool {
	_, ok := topics[subject]
	return ok
}
