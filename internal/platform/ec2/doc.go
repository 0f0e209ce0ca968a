// Package ec2 lists Amazon EC2 instances and starts or stops them.
//
// [RealClient] implements inventory.Platform on top of aws-sdk-go-v2. Listing
// walks every DescribeInstances page and can be narrowed with filters such as
// tag:team=platform. Schedules are read from instance tags verbatim.
//
// StartInstances and StopInstances are issued for one instance at a time and
// are not awaited. Throttling and transient state conflicts are retried with
// exponential backoff; every other API error is returned immediately.
package ec2
