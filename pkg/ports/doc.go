/*
Package ports declares the collaborator contracts required by the Espalier
engine: session persistence (SessionStore), definition loading
(DefinitionLoader) and optional cross-replica serialization
(DistributedLocker).

Adapters in pkg/adapters provide concrete implementations. The package also
exports RunSessionStoreContract, a reusable test suite every store adapter is
expected to pass.
*/
package ports
