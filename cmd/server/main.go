package main

// @title           Onside API
// @version         1.0
// @description     Personal finance backend: transactions, subscriptions, savings goals and user profiles.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Token" or "Bearer" followed by a space and the API token.
func main() {
	Execute()
}
