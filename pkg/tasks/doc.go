// Package tasks implements to-do items and the ownership rules gating access
// to them.
//
// Every task is owned by exactly one account, fixed at creation. Reads of a
// specific task are owner-scoped and hide existence: a foreign or unknown id
// both answer "not found". Mutations on an existing task by a non-owner answer
// "forbidden". The decision logic lives in Authorize and is applied uniformly
// by the service.
package tasks
