// Package app declares the storefront's route table.
//
// The table is built fresh on every call and never mutated afterwards, so
// each navigation session may construct its own router from it.
package app
