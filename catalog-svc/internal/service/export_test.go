package service

// SetCodeGenerator replaces the restaurant code source in tests.
func SetCodeGenerator(s *RestaurantService, fn func() string) {
	s.newCode = fn
}
