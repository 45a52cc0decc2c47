// Package menu provides the Menu entity and the Dish aggregate.
//
// A Dish belongs to exactly one Menu and therefore to exactly one Branch. It
// carries a kill-switch (available) and a list of ingredient links, each either
// required or optional. Only required links take part in availability.
package menu
