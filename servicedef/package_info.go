// Package servicedef contains the request and response bodies of the companies and users
// resources, as Go types that marshal to and from the service's JSON.
package servicedef
