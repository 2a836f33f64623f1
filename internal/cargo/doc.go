// Package cargo defines the entities of a loading run: items, the three
// container roles and the fleet that holds exactly one container per role.
// Containers enforce their capacity on every insertion.
package cargo
