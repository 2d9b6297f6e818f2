// Package services holds domain services that decide on behalf of more than
// one model type.
//
//   - OrderStateMachine: evaluates role-scoped order status transitions
package services
