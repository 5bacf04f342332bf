package useragent

// BuiltinRules returns fresh copies of the stock rules, category by category,
// in evaluation order.
func BuiltinRules() []Rule {
	var rules []Rule
	rules = append(rules, osRules()...)
	rules = append(rules, distRules()...)
	rules = append(rules, flavorRules()...)
	rules = append(rules, browserRules()...)
	return rules
}
