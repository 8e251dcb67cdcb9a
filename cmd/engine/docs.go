package main

//go:generate swag init -g cmd/engine/main.go -o docs

// @title           Domain Bid Engine API
// @version         0.1.0
// @description     Auction bidding decisions, outcome history, and market intelligence.
// @host            localhost:8080
// @BasePath        /
// @schemes         http
