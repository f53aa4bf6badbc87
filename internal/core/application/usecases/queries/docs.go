// Package queries is the read side of the fulfillment engine. Handlers read
// straight from the database with SQL shaped for the caller and never load
// aggregates, so they take no locks and record no events.
package queries
